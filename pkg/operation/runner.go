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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit bounds concurrent documents when Limit is not set.
const DefaultLimit = 4

// DocumentFunc processes one document.
type DocumentFunc func(ctx context.Context, path string) error

// 🏃 Runner executes a DocumentFunc over a set of paths
type Runner struct {
	Async bool
	Limit int
}

// 🏗️ NewRunner creates a new runner
func NewRunner(async bool, limit int) *Runner {
	return &Runner{
		Async: async,
		Limit: limit,
	}
}

// 🏃 Run calls fn for every path. A failing document does not stop the
// others; the returned error joins every per-document error in path order.
func (r *Runner) Run(ctx context.Context, paths []string, fn DocumentFunc) error {
	errs := make([]error, len(paths))

	if r.Async {
		r.runAsync(ctx, paths, fn, errs)
	} else {
		r.runSync(ctx, paths, fn, errs)
	}

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) == 0 {
		return nil
	}

	zerolog.Ctx(ctx).Debug().Int("failed", len(failed)).Int("total", len(paths)).Msg("documents failed")
	return errors.Join(failed...)
}

// 🔄 runSync runs documents one after another
func (r *Runner) runSync(ctx context.Context, paths []string, fn DocumentFunc, errs []error) {
	for i, path := range paths {
		errs[i] = r.runOne(ctx, path, fn)
	}
}

// ⚡ runAsync runs documents on a bounded errgroup
func (r *Runner) runAsync(ctx context.Context, paths []string, fn DocumentFunc, errs []error) {
	limit := r.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			errs[i] = r.runOne(ctx, path, fn)
			return nil
		})
	}

	_ = g.Wait()
}

func (r *Runner) runOne(ctx context.Context, path string, fn DocumentFunc) error {
	if err := ctx.Err(); err != nil {
		return errors.Errorf("%s: operation cancelled: %w", path, err)
	}
	if err := fn(ctx, path); err != nil {
		return errors.Errorf("%s: %w", path, err)
	}
	return nil
}
