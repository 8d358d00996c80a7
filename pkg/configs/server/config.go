package server

import (
	"fmt"
	"strings"
)

// ServerType selects which face of the API a process serves.
//
// A LEAF process runs on the food computer itself and serves its one
// farm. A ROOT process aggregates many registered leaf farms and
// serves each under its slug.
type ServerType string

const (
	Leaf ServerType = "LEAF"
	Root ServerType = "ROOT"
)

type ServerConfig struct {
	// ServerType is LEAF or ROOT. Defaults to LEAF.
	ServerType ServerType `yaml:"server_type"`

	Port string `yaml:"port"`

	DBURI string `yaml:"dburi"`

	// ParentServer is the URL of the root server this leaf registers
	// with. Ignored on a ROOT process.
	ParentServer string `yaml:"parent_server,omitempty"`

	// SchemaDir is the directory holding the layout schema YAML files.
	SchemaDir string `yaml:"schema_dir"`

	// SecretFile holds the token signing key. Created with a random
	// key on first boot when missing.
	SecretFile string `yaml:"secret_file"`

	// AuthRequired guards every route except farm, auth and docs with
	// bearer tokens. Off by default: a food computer on its own LAN
	// usually runs open.
	AuthRequired bool `yaml:"auth_required,omitempty"`

	Debug bool `yaml:"debug,omitempty"`
}

func (c *ServerConfig) normalize() {
	if c.ServerType == "" {
		c.ServerType = Leaf
	}
	c.ServerType = ServerType(strings.ToUpper(string(c.ServerType)))
	if c.Port == "" {
		c.Port = "8000"
	}
}

func (c *ServerConfig) Validate() error {
	switch c.ServerType {
	case Leaf, Root:
	default:
		return fmt.Errorf("server_type must be LEAF or ROOT, not %q", c.ServerType)
	}
	if c.DBURI == "" {
		return fmt.Errorf("dburi is required")
	}
	if c.SchemaDir == "" {
		return fmt.Errorf("schema_dir is required")
	}
	return nil
}
