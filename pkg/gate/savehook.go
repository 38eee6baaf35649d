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
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/chaingate/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// ErrSaveAborted marks a save-triggered run that ended without a usable result.
var ErrSaveAborted = errors.Base("save-triggered transform aborted")

// 💾 SaveResult is what the save hook hands back before the write proceeds.
// A nil Edit means: save the document as it is.
type SaveResult struct {
	Edit    *EditDescriptor
	Outcome *Outcome // nil when the pipeline did not run to completion
	Err     error
}

// 🎯 WillSave is the "document is about to be saved" hook. It blocks until the
// pipeline yields its edit, cfg.SaveTimeout passes, or ctx is done. After a
// timeout it waits up to the cancel grace for the run to stop. It never
// fails closed: any problem yields a nil Edit so the save goes ahead with the
// unmodified content.
func (g *Gate) WillSave(ctx context.Context, doc Document, cfg *config.Config) SaveResult {
	logger := zerolog.Ctx(ctx).With().Str("path", doc.Path()).Logger()

	if !cfg.Transform.FormatOnSave {
		return SaveResult{}
	}
	if !EligibilityFromConfig(cfg).Eligible(doc) {
		logger.Debug().Msg("save hook skipped, document not eligible")
		return SaveResult{}
	}

	logger.Debug().Dur("timeout", cfg.SaveTimeout).Msg("format on save triggered")

	runCtx, cancel := context.WithTimeout(ctx, cfg.SaveTimeout)
	defer cancel()

	done := make(chan SaveResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- SaveResult{Err: errors.Errorf("%w: %s", ErrSaveAborted, fmt.Sprint(r))}
			}
		}()
		out := g.Process(runCtx, doc, cfg, InvocationContext{IsManualCommand: false})
		done <- SaveResult{Edit: out.Edit, Outcome: out, Err: out.Err}
	}()

	select {
	case res := <-done:
		if res.Outcome == nil && res.Err != nil {
			g.notifier.Error("Failed to process file: " + res.Err.Error())
			logger.Error().Err(res.Err).Msg("save hook recovered")
		}
		return res
	case <-runCtx.Done():
		err := errors.Errorf("%w: %s", ErrSaveAborted, runCtx.Err().Error())
		g.notifier.Error("Failed to process file: " + err.Error())
		logger.Warn().Err(runCtx.Err()).Msg("save hook gave up, saving unmodified content")

		// the transformer may still be writing the file; let the cancelled run finish
		select {
		case <-done:
		case <-time.After(g.cancelGrace):
			logger.Warn().Dur("grace", g.cancelGrace).Msg("cancelled transformer still running")
		}
		return SaveResult{Err: err}
	}
}
