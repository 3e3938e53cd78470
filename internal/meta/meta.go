// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"
	"io"
	"time"

	"github.com/staranto/cashgo/internal/config"
)

// Meta are the meta-options that are available on all commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// StartingDir is the working directory at startup. The default cache file
	// lives here.
	StartingDir string
	Stdout      io.Writer
	Stderr      io.Writer
	// Clock overrides the cache's wall clock. Nil means time.Now.
	Clock func() time.Time
}
