package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/lleval/pkg"
)

// Version prints the version embedded at build time.
type Version struct{}

// Run executes the version command.
func (Version) Run(ctx context.Context) error {
	_, err := fmt.Fprintf(outputFrom(ctx), "%s version %s\n", pkg.Name, pkg.Version)

	return err
}
