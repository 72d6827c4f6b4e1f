//go:build !pprof

package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lleval/profile"
)

// pprofConfig is empty when built without the pprof tag.
type pprofConfig struct{}

func (pprofConfig) vars() kong.Vars { return kong.Vars{} }

func (pprofConfig) group() kong.Group { return kong.Group{Key: profile.Tag} }

// start is a no-op when built without the pprof tag.
func (pprofConfig) start(context.Context) (stop func()) { return func() {} }
