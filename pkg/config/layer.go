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
	"time"

	"gitlab.com/tozd/go/errors"
)

// 🧱 Layer is one source of configuration. A nil field means the layer does
// not set that key, so lower layers keep their value.
type Layer struct {
	SkipNone       *bool     `json:"skip_none,omitempty" yaml:"skip_none,omitempty" hcl:"skip_none,optional"`
	ApplyOnly      *[]string `json:"apply_only,omitempty" yaml:"apply_only,omitempty" hcl:"apply_only,optional"`
	SkipOnly       *[]string `json:"skip_only,omitempty" yaml:"skip_only,omitempty" hcl:"skip_only,optional"`
	AddToSkip      *[]string `json:"add_to_default_skip_list,omitempty" yaml:"add_to_default_skip_list,omitempty" hcl:"add_to_default_skip_list,optional"`
	RemoveFromSkip *[]string `json:"remove_from_default_skip_list,omitempty" yaml:"remove_from_default_skip_list,omitempty" hcl:"remove_from_default_skip_list,optional"`
	ShowDiff       *bool     `json:"show_diff,omitempty" yaml:"show_diff,omitempty" hcl:"show_diff,optional"`
	FormatOnSave   *bool     `json:"format_on_save,omitempty" yaml:"format_on_save,omitempty" hcl:"format_on_save,optional"`
	Command        *string   `json:"command,omitempty" yaml:"command,omitempty" hcl:"command,optional"`
	Languages      *[]string `json:"languages,omitempty" yaml:"languages,omitempty" hcl:"languages,optional"`
	Patterns       *[]string `json:"patterns,omitempty" yaml:"patterns,omitempty" hcl:"patterns,optional"`
	SaveTimeout    *string   `json:"save_timeout,omitempty" yaml:"save_timeout,omitempty" hcl:"save_timeout,optional"`
	DiffDir        *string   `json:"diff_dir,omitempty" yaml:"diff_dir,omitempty" hcl:"diff_dir,optional"`

	// Source names where the layer came from, for logging.
	Source string `json:"-" yaml:"-"`
}

// 🔄 Apply overlays the keys set in each layer onto a copy of cfg. Later
// layers win.
func (cfg *Config) Apply(layers ...*Layer) (*Config, error) {
	out := *cfg
	out.Transform.ApplyOnly = cloneStrings(cfg.Transform.ApplyOnly)
	out.Transform.SkipOnly = cloneStrings(cfg.Transform.SkipOnly)
	out.Transform.AddToSkip = cloneStrings(cfg.Transform.AddToSkip)
	out.Transform.RemoveFromSkip = cloneStrings(cfg.Transform.RemoveFromSkip)
	out.Languages = cloneStrings(cfg.Languages)
	out.Patterns = cloneStrings(cfg.Patterns)
	out.sources = cloneStrings(cfg.sources)

	for _, l := range layers {
		if l == nil {
			continue
		}
		if err := l.applyTo(&out); err != nil {
			return nil, errors.Errorf("applying %s: %w", l.name(), err)
		}
		out.sources = append(out.sources, l.name())
	}

	return &out, nil
}

func (l *Layer) applyTo(cfg *Config) error {
	if l.SkipNone != nil {
		cfg.Transform.SkipNone = *l.SkipNone
	}
	if l.ApplyOnly != nil {
		cfg.Transform.ApplyOnly = cloneStrings(*l.ApplyOnly)
	}
	if l.SkipOnly != nil {
		cfg.Transform.SkipOnly = cloneStrings(*l.SkipOnly)
	}
	if l.AddToSkip != nil {
		cfg.Transform.AddToSkip = cloneStrings(*l.AddToSkip)
	}
	if l.RemoveFromSkip != nil {
		cfg.Transform.RemoveFromSkip = cloneStrings(*l.RemoveFromSkip)
	}
	if l.ShowDiff != nil {
		cfg.Transform.ShowDiff = *l.ShowDiff
	}
	if l.FormatOnSave != nil {
		cfg.Transform.FormatOnSave = *l.FormatOnSave
	}
	if l.Command != nil {
		cfg.Command = *l.Command
	}
	if l.Languages != nil {
		cfg.Languages = cloneStrings(*l.Languages)
	}
	if l.Patterns != nil {
		cfg.Patterns = cloneStrings(*l.Patterns)
	}
	if l.DiffDir != nil {
		cfg.DiffDir = *l.DiffDir
	}
	if l.SaveTimeout != nil {
		d, err := time.ParseDuration(*l.SaveTimeout)
		if err != nil {
			return errors.Errorf("parsing save_timeout: %w", err)
		}
		cfg.SaveTimeout = d
	}
	return nil
}

func (l *Layer) name() string {
	if l.Source == "" {
		return "unnamed layer"
	}
	return l.Source
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
