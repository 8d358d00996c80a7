package server_test

import (
	"os"
	"path/filepath"
	"testing"

	kcs "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/configs/server"
)

func TestSecret(t *testing.T) {

	t.Run("it generates and persists a secret on first boot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "var", "secret")

		created, err := kcs.Secret(path)
		if err != nil {
			t.Fatalf("secret failed: %v", err)
		}
		if len(created) == 0 {
			t.Fatal("generated secret is empty")
		}

		persisted, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("secret is not persisted: %v", err)
		}
		if string(persisted) != string(created) {
			t.Errorf("persisted secret differs from the returned one")
		}
	})

	t.Run("it reads back the same secret on later boots", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secret")

		first, err := kcs.Secret(path)
		if err != nil {
			t.Fatal(err)
		}
		second, err := kcs.Secret(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(first) != string(second) {
			t.Errorf("secret changed between boots")
		}
	})

	t.Run("it keeps a secret placed by the operator", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secret")
		if err := os.WriteFile(path, []byte("operator-chosen"), 0o600); err != nil {
			t.Fatal(err)
		}

		actual, err := kcs.Secret(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(actual) != "operator-chosen" {
			t.Errorf("unmatch secret:%s, expected:operator-chosen", actual)
		}
	})
}
