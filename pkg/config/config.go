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
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultCommand     = "npx chainsafe"
	DefaultSaveTimeout = 30 * time.Second
)

// 🔧 TransformConfig holds the options that shape the transformer's arguments
// and how its result is disclosed.
type TransformConfig struct {
	SkipNone       bool     // Disable the transformer's default skip list
	ApplyOnly      []string // Apply only these rules
	SkipOnly       []string // Skip only these rules
	AddToSkip      []string // Rules added to the default skip list
	RemoveFromSkip []string // Rules removed from the default skip list
	ShowDiff       bool     // Show the diff on manual runs
	FormatOnSave   bool     // Run the transformer before every save
}

// 📚 Config represents the complete configuration
type Config struct {
	Transform   TransformConfig
	Command     string        // Transformer program, the target path and arguments are appended
	Languages   []string      // Eligible language ids
	Patterns    []string      // Eligible file name globs
	SaveTimeout time.Duration // Upper bound for a save-triggered run
	DiffDir     string        // Optional directory receiving rendered diffs

	sources []string
}

// 🏭 Default returns the configuration used when no layer sets a key
func Default() *Config {
	return &Config{
		Transform: TransformConfig{
			ShowDiff: true,
		},
		Command:     DefaultCommand,
		Languages:   []string{"typescript", "javascript"},
		Patterns:    []string{"*.ts", "*.js", "*.tsx", "*.jsx"},
		SaveTimeout: DefaultSaveTimeout,
	}
}

// Sources lists the layers applied on top of the defaults, lowest precedence first.
func (cfg *Config) Sources() []string {
	return append([]string(nil), cfg.sources...)
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.Command) == "" {
		return errors.Errorf("command is required")
	}
	if cfg.SaveTimeout <= 0 {
		return errors.Errorf("save_timeout must be positive, got %s", cfg.SaveTimeout)
	}
	for _, p := range cfg.Patterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid pattern %q", p)
		}
	}

	lists := map[string][]string{
		"apply_only":                    cfg.Transform.ApplyOnly,
		"skip_only":                     cfg.Transform.SkipOnly,
		"add_to_default_skip_list":      cfg.Transform.AddToSkip,
		"remove_from_default_skip_list": cfg.Transform.RemoveFromSkip,
	}
	for key, ids := range lists {
		for i, id := range ids {
			if strings.TrimSpace(id) == "" {
				return errors.Errorf("%s[%d]: rule id is empty", key, i)
			}
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	t := cfg.Transform
	return fmt.Sprintf("%s (skip_none=%t apply_only=%v skip_only=%v skip=%v no_skip=%v show_diff=%t format_on_save=%t)",
		cfg.Command, t.SkipNone, t.ApplyOnly, t.SkipOnly, t.AddToSkip, t.RemoveFromSkip, t.ShowDiff, t.FormatOnSave)
}
