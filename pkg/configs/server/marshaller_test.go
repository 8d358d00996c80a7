package server_test

import (
	"testing"

	kcs "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/configs/server"
)

func TestLoadServerConfig(t *testing.T) {

	t.Run("it can be created from a config file", func(t *testing.T) {
		result, err := kcs.LoadServerConfig("./testdata/config.yaml")

		if err != nil {
			t.Fatalf("failed to parse config.: %v", err)
		}
		if result.ServerType != kcs.Leaf {
			t.Errorf("unmatch server_type:%s, expected:%s", result.ServerType, kcs.Leaf)
		}
		expectedURI := "postgres://gro-test-pgdb-svc:32555/gro"
		if result.DBURI != expectedURI {
			t.Errorf("unmatch dburi:%s, expected:%s", result.DBURI, expectedURI)
		}
		expectedParent := "http://openag-root.example.com:8000"
		if result.ParentServer != expectedParent {
			t.Errorf("unmatch parent_server:%s, expected:%s", result.ParentServer, expectedParent)
		}
		expectedServerPort := "8000"
		if result.Port != expectedServerPort {
			t.Errorf("unmatch port:%s, expected:%s", result.Port, expectedServerPort)
		}
		if !result.Debug {
			t.Errorf("unmatch debug:%v, expected:true", result.Debug)
		}
	})

	t.Run("it defaults server_type to LEAF and port to 8000", func(t *testing.T) {
		result, err := kcs.Unmarshal([]byte(
			"dburi: postgres://localhost:5432/gro\nschema_dir: ./layouts\n",
		))
		if err != nil {
			t.Fatalf("failed to parse config.: %v", err)
		}
		if result.ServerType != kcs.Leaf {
			t.Errorf("unmatch server_type:%s, expected:%s", result.ServerType, kcs.Leaf)
		}
		if result.Port != "8000" {
			t.Errorf("unmatch port:%s, expected:8000", result.Port)
		}
	})

	t.Run("it rejects unknown server_type", func(t *testing.T) {
		_, err := kcs.Unmarshal([]byte(
			"server_type: BRANCH\ndburi: postgres://localhost:5432/gro\nschema_dir: ./layouts\n",
		))
		if err == nil {
			t.Errorf("config with server_type BRANCH is accepted")
		}
	})

	t.Run("it rejects config missing dburi", func(t *testing.T) {
		_, err := kcs.Unmarshal([]byte("schema_dir: ./layouts\n"))
		if err == nil {
			t.Errorf("config without dburi is accepted")
		}
	})
}
