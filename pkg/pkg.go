//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the lleval module embedded at build
// time. It is printed by the CLI when users invoke the version subcommand.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "lleval"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Single-pass LL(1) expression evaluator"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
