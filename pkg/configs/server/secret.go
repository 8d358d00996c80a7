package server

import (
	"os"

	kio "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/io"
	kstrings "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/utils/strings"
)

// Secret reads the signing key from path, generating and persisting a
// fresh one on first boot. The file is owner-only: it is a credential.
func Secret(path string) ([]byte, error) {
	if content, err := os.ReadFile(path); err == nil && len(content) != 0 {
		return content, nil
	} else if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	secret, err := kstrings.RandomHex(32)
	if err != nil {
		return nil, err
	}
	file, err := kio.CreateAll(path, 0o600, 0o755)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if _, err := file.Write([]byte(secret)); err != nil {
		return nil, err
	}
	return []byte(secret), nil
}
