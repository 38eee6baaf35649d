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
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/chaingate/pkg/config"
	"github.com/walteh/chaingate/pkg/diff"
	"github.com/walteh/chaingate/pkg/invocation"
	"github.com/walteh/chaingate/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// ErrDiffRendering marks a diff that could not be shown. It never blocks the edit.
var ErrDiffRendering = errors.Base("diff rendering failure")

// DisclosureError wraps a failed side document.
type DisclosureError struct {
	Name string
	Err  error
}

func (e *DisclosureError) Error() string {
	return fmt.Sprintf("showing %s: %v", e.Name, e.Err)
}

// Unwrap exposes ErrDiffRendering and the cause.
func (e *DisclosureError) Unwrap() []error {
	return []error{ErrDiffRendering, e.Err}
}

// 🔧 Options configures a Gate
type Options struct {
	// Invoker runs the transformer. Required.
	Invoker transform.Invoker
	// Discloser shows rendered diffs. Nil discards them.
	Discloser Discloser
	// Notifier receives user-visible messages. Nil discards them.
	Notifier Notifier
	// CancelGrace is how long a timed-out save waits for the cancelled run to
	// wind down. Zero means DefaultCancelGrace.
	CancelGrace time.Duration
}

// DefaultCancelGrace covers the invoker's kill and pipe drain.
const DefaultCancelGrace = 3 * time.Second

// 🚦 Gate runs the resolve, invoke, compare, disclose, apply pipeline.
// It holds no per-run state, so one Gate serves concurrent runs.
type Gate struct {
	invoker     transform.Invoker
	discloser   Discloser
	notifier    Notifier
	cancelGrace time.Duration
}

// 🏭 New creates a gate with the given options
func New(opts Options) (*Gate, error) {
	if opts.Invoker == nil {
		return nil, errors.Errorf("invoker is required")
	}
	g := &Gate{
		invoker:     opts.Invoker,
		discloser:   opts.Discloser,
		notifier:    opts.Notifier,
		cancelGrace: opts.CancelGrace,
	}
	if g.notifier == nil {
		g.notifier = nopNotifier{}
	}
	if g.cancelGrace <= 0 {
		g.cancelGrace = DefaultCancelGrace
	}
	return g, nil
}

// 📋 Outcome describes a finished run.
type Outcome struct {
	State      State
	Trace      []State
	Invocation invocation.Invocation
	// Edit is nil unless the run reached Done.
	Edit *EditDescriptor
	// Rendering is set when a diff was rendered for disclosure.
	Rendering diff.Rendering
	// Disclosed is true when the side document was shown.
	Disclosed bool
	// Err is the failure that ended the run in Failed.
	Err error
	// DisclosureErr is a side document failure; the edit is still produced.
	DisclosureErr error
}

// Changed reports whether the run produced an edit.
func (o *Outcome) Changed() bool {
	return o.Edit != nil
}

// 🎯 Process runs the pipeline for doc. It always returns an Outcome; failures
// are reported through the notifier and recorded in Outcome.Err.
func (g *Gate) Process(ctx context.Context, doc Document, cfg *config.Config, ictx InvocationContext) *Outcome {
	logger := zerolog.Ctx(ctx).With().Str("path", doc.Path()).Str("trigger", ictx.Trigger()).Logger()

	m := newMachine()
	out := &Outcome{}
	defer func() {
		out.State = m.current
		out.Trace = m.trace
		logger.Debug().Stringer("state", m.current).Bool("changed", out.Edit != nil).Msg("pipeline finished")
	}()

	if !EligibilityFromConfig(cfg).Eligible(doc) {
		logger.Debug().Str("language", doc.LanguageID()).Msg("document not eligible")
		m.to(StateSkipped)
		return out
	}

	// everything below works from this snapshot
	original := doc.Text()

	m.to(StateResolving)
	args := invocation.Resolve(cfg.Transform)
	out.Invocation = invocation.Build(cfg.Command, doc.Path(), args)
	logger.Debug().Strs("args", args).Str("command", out.Invocation.Line).Msg("resolved invocation")

	m.to(StateInvoking)
	content, err := g.invoker.Invoke(ctx, out.Invocation)
	if err != nil {
		m.to(StateFailed)
		out.Err = errors.Errorf("running transformer: %w", err)
		g.notifier.Error(failureMessage(err))
		logger.Error().Err(err).Msg("transformer failed")
		return out
	}

	m.to(StateComparing)
	if content == original {
		logger.Debug().Msg("no changes needed")
		m.to(StateNoOp)
		return out
	}

	if cfg.Transform.ShowDiff && ictx.IsManualCommand {
		m.to(StateRendering)
		name := filepath.Base(doc.Path())
		rendering, err := diff.Render(original, content, name)
		if err != nil {
			m.to(StateFailed)
			out.Err = errors.Errorf("%w: %s", ErrDiffRendering, err.Error())
			g.notifier.Error("Error showing diff: " + err.Error())
			return out
		}

		if rendering != nil {
			out.Rendering = rendering
			m.to(StateAwaitingDisclosure)
			g.disclose(ctx, out, name, rendering)
		}
	}

	m.to(StateApplying)
	out.Edit = FullDocumentEdit(original, content)
	m.to(StateDone)

	return out
}

// disclose shows the rendering. Disclosure is informational: it always
// proceeds to apply, and its failures do not undo the transform.
func (g *Gate) disclose(ctx context.Context, out *Outcome, name string, rendering diff.Rendering) {
	if g.discloser == nil {
		return
	}

	side := SideDocument{
		Name:     name + ".diff",
		Language: "diff",
		Content:  rendering.String(),
	}
	if err := g.discloser.ShowSideDocument(ctx, side); err != nil {
		out.DisclosureErr = &DisclosureError{Name: side.Name, Err: err}
		g.notifier.Error("Error showing diff: " + err.Error())
		zerolog.Ctx(ctx).Warn().Err(err).Str("side_document", side.Name).Msg("disclosure failed")
		return
	}

	out.Disclosed = true
	g.notifier.Success("File updated")
}

func failureMessage(err error) string {
	if f, ok := transform.AsFailure(err); ok {
		if f.Kind == transform.KindRead {
			return "Transform output unavailable: " + f.Message
		}
		return "Transform failed: " + f.Message
	}
	return "Failed to process file: " + err.Error()
}
