package io_test

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	kio "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/io"
)

func TestCreateAll(t *testing.T) {

	t.Run("it creates a file with its missing parent directories", func(t *testing.T) {
		defaultUmask := syscall.Umask(0)
		defer syscall.Umask(defaultUmask)

		root := t.TempDir()
		target := filepath.Join(root, "foo", "bar", "secret")

		file, err := kio.CreateAll(target, 0o600, 0o755)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		file.Close()

		dirStat, err := os.Stat(filepath.Join(root, "foo", "bar"))
		if err != nil || !dirStat.IsDir() {
			t.Fatalf("parent directory is not created (stat: %v, err: %v)", dirStat, err)
		}
		if dirStat.Mode().Perm() != 0o755 {
			t.Errorf("unmatch directory mode:%v, expected:0755", dirStat.Mode().Perm())
		}

		fileStat, err := os.Stat(target)
		if err != nil || !fileStat.Mode().IsRegular() {
			t.Fatalf("file is not created (stat: %v, err: %v)", fileStat, err)
		}
		if fileStat.Mode().Perm() != 0o600 {
			t.Errorf("unmatch file mode:%v, expected:0600", fileStat.Mode().Perm())
		}
	})

	t.Run("it truncates an existing file", func(t *testing.T) {
		root := t.TempDir()
		target := filepath.Join(root, "secret")
		if err := os.WriteFile(target, []byte("stale content"), 0o600); err != nil {
			t.Fatal(err)
		}

		file, err := kio.CreateAll(target, 0o600, 0o755)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		file.Close()

		content, err := os.ReadFile(target)
		if err != nil {
			t.Fatal(err)
		}
		if len(content) != 0 {
			t.Errorf("file is not truncated: %q", content)
		}
	})
}
