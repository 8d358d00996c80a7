// Package buildtime exposes the version stamped into the binary.
//
// VERSION and revision are regular files embedded at build time; the
// build script overwrites revision with the actual commit hash.
package buildtime

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

//go:embed revision
var revision string

func init() {
	version = strings.TrimSpace(version)
	revision = strings.TrimSpace(revision)
}

func VERSION() string {
	return version
}

func GitRevision() string {
	return revision
}

func VersionString() string {
	return version + " (commit: " + revision + ")"
}
