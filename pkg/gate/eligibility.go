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

package gate

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/chaingate/pkg/config"
)

// 🔍 Eligibility decides which documents the transformer accepts.
type Eligibility struct {
	Languages []string // Accepted language ids
	Patterns  []string // Accepted path globs; patterns without a slash match the base name
}

// EligibilityFromConfig builds the eligibility rules from cfg.
func EligibilityFromConfig(cfg *config.Config) Eligibility {
	return Eligibility{Languages: cfg.Languages, Patterns: cfg.Patterns}
}

// Eligible reports whether doc is a recognised script document.
func (e Eligibility) Eligible(doc Document) bool {
	lang := doc.LanguageID()
	for _, l := range e.Languages {
		if lang != "" && strings.EqualFold(l, lang) {
			return true
		}
	}

	path := filepath.ToSlash(doc.Path())
	base := filepath.Base(doc.Path())
	for _, p := range e.Patterns {
		target := path
		if !strings.Contains(p, "/") {
			target = base
		}
		if ok, err := doublestar.Match(p, target); err == nil && ok {
			return true
		}
	}
	return false
}
