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

package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	workspaceBase = ".chaingate"
	userDirName   = "chaingate"
	userBase      = "config"
)

var extensions = []string{".yaml", ".yml", ".json", ".hcl"}

// LoadOptions selects the layers stacked on top of the defaults.
type LoadOptions struct {
	// UserDir overrides the user configuration directory. Empty means os.UserConfigDir.
	UserDir string
	// DocumentDir is where the workspace file search starts.
	DocumentDir string
	// File is an explicit config file; it sits above the workspace file.
	File string
	// Flags is the command line layer, always applied last.
	Flags *Layer
	// SkipUser disables the user layer.
	SkipUser bool
}

// 🎯 LoadLayer loads one configuration layer from a file.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
func LoadLayer(ctx context.Context, path string) (*Layer, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration layer")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("unsupported file extension %q", filepath.Ext(path))
	}

	layer, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}
	layer.Source = path

	return layer, nil
}

// 🎯 Load resolves the effective configuration:
// defaults < user file < workspace file < explicit file < flags.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	var paths []string
	if !opts.SkipUser {
		if p, ok := FindUserFile(opts.UserDir); ok {
			paths = append(paths, p)
		}
	}
	if opts.DocumentDir != "" {
		if p, ok := FindWorkspaceFile(opts.DocumentDir); ok {
			paths = append(paths, p)
		}
	}
	if opts.File != "" {
		paths = append(paths, opts.File)
	}

	layers := make([]*Layer, 0, len(paths)+1)
	for _, p := range paths {
		layer, err := LoadLayer(ctx, p)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	if opts.Flags != nil {
		if opts.Flags.Source == "" {
			opts.Flags.Source = "flags"
		}
		layers = append(layers, opts.Flags)
	}

	cfg, err := Default().Apply(layers...)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Strs("sources", cfg.Sources()).Str("config", cfg.String()).Msg("configuration resolved")

	return cfg, nil
}

// 🔍 FindWorkspaceFile walks up from dir looking for .chaingate.{yaml,yml,json,hcl}.
func FindWorkspaceFile(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		if p, ok := firstExisting(dir, workspaceBase); ok {
			return p, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// 🔍 FindUserFile looks for config.{yaml,yml,json,hcl} in the chaingate user config directory.
func FindUserFile(userDir string) (string, bool) {
	if userDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", false
		}
		userDir = filepath.Join(base, userDirName)
	}
	return firstExisting(userDir, userBase)
}

func firstExisting(dir, base string) (string, bool) {
	for _, ext := range extensions {
		p := filepath.Join(dir, base+ext)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}
