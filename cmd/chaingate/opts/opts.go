// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package opts

import (
	"context"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/chaingate/pkg/config"
	"github.com/walteh/chaingate/pkg/gate"
	"github.com/walteh/chaingate/pkg/host"
	"github.com/walteh/chaingate/pkg/log"
	"github.com/walteh/chaingate/pkg/operation"
	"github.com/walteh/chaingate/pkg/transform"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
	Async      bool
	Jobs       int
	SkipUser   bool

	// Overrides is the command line configuration layer.
	Overrides *config.Layer

	Stdout io.Writer
	Stderr io.Writer

	ZLog    zerolog.Logger
	Invoker transform.Invoker
}

// LoadConfig resolves the configuration that applies to the document at path.
func (o *RootOpts) LoadConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := config.Load(ctx, config.LoadOptions{
		DocumentDir: filepath.Dir(path),
		File:        o.ConfigFile,
		Flags:       o.Overrides,
		SkipUser:    o.SkipUser,
	})
	if err != nil {
		return nil, errors.Errorf("loading config for %s: %w", path, err)
	}
	return cfg, nil
}

// NewGate wires a gate for cfg to the console logger carried by ctx.
func (o *RootOpts) NewGate(ctx context.Context, cfg *config.Config) (*gate.Gate, error) {
	return gate.New(gate.Options{
		Invoker:   o.Invoker,
		Discloser: host.NewConsoleDiscloser(o.Stdout, cfg.DiffDir),
		Notifier:  log.FromContext(ctx),
	})
}

// Runner returns the batch runner for the async and jobs flags.
func (o *RootOpts) Runner() *operation.Runner {
	return operation.NewRunner(o.Async, o.Jobs)
}
