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

package invocation

import "github.com/walteh/chaingate/pkg/config"

const (
	FlagSkipNone  = "--skip-none"
	FlagApplyOnly = "--apply-only"
	FlagSkipOnly  = "--skip-only"
	FlagNoSkip    = "--no-skip"
	FlagSkip      = "--skip"
)

// 🎯 Resolve turns a TransformConfig into the transformer's argument list.
//
// --skip-none is independent and always first. After it exactly one
// selection mode applies: an allow-list (--apply-only), else a deny-list
// (--skip-only), else edits to the default skip list (--no-skip, then --skip).
func Resolve(cfg config.TransformConfig) []string {
	args := []string{}

	if cfg.SkipNone {
		args = append(args, FlagSkipNone)
	}

	switch {
	case len(cfg.ApplyOnly) > 0:
		args = append(args, FlagApplyOnly)
		args = append(args, cfg.ApplyOnly...)
	case len(cfg.SkipOnly) > 0:
		args = append(args, FlagSkipOnly)
		args = append(args, cfg.SkipOnly...)
	default:
		if len(cfg.RemoveFromSkip) > 0 {
			args = append(args, FlagNoSkip)
			args = append(args, cfg.RemoveFromSkip...)
		}
		if len(cfg.AddToSkip) > 0 {
			args = append(args, FlagSkip)
			args = append(args, cfg.AddToSkip...)
		}
	}

	return args
}
