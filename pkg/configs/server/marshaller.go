package server

import (
	"os"

	"gopkg.in/yaml.v3"
)

func LoadServerConfig(filepath string) (*ServerConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (*ServerConfig, error) {
	var out ServerConfig
	if err := yaml.Unmarshal(conf, &out); err != nil {
		return nil, err
	}
	out.normalize()
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}
