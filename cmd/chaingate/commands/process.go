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

package commands

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/chaingate/cmd/chaingate/opts"
	"github.com/walteh/chaingate/pkg/diff"
	"github.com/walteh/chaingate/pkg/gate"
	"github.com/walteh/chaingate/pkg/host"
	"github.com/walteh/chaingate/pkg/log"
)

// result is one document's trip through the gate.
type result struct {
	doc     *host.FileDocument
	outcome *gate.Outcome
	text    string
}

// processManual runs the pipeline for path as an explicit command and settles
// the file on disk to the resulting text.
func processManual(ctx context.Context, o *opts.RootOpts, path string) (*result, error) {
	doc, err := host.LoadDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	cfg, err := o.LoadConfig(ctx, doc.Path())
	if err != nil {
		return nil, err
	}
	g, err := o.NewGate(ctx, cfg)
	if err != nil {
		return nil, errors.Errorf("creating gate: %w", err)
	}

	out := g.Process(ctx, doc, cfg, gate.InvocationContext{IsManualCommand: true})

	text, err := host.ApplyEdit(doc.Text(), out.Edit)
	if err != nil {
		return nil, errors.Errorf("applying edit: %w", err)
	}
	if out.State != gate.StateSkipped {
		if _, err := host.Settle(ctx, doc.Path(), text); err != nil {
			return nil, err
		}
	}

	return &result{doc: doc, outcome: out, text: text}, nil
}

// documentOperation summarizes an outcome for the console.
func documentOperation(path, trigger string, out *gate.Outcome) log.DocumentOperation {
	op := log.DocumentOperation{
		Path:    path,
		Trigger: trigger,
		Outcome: "aborted",
	}
	if out == nil {
		op.Failed = true
		return op
	}
	op.Outcome = out.State.String()
	op.Changed = out.Changed()
	op.Failed = out.State == gate.StateFailed
	op.Skipped = out.State == gate.StateSkipped
	op.Added, op.Removed = diff.Stat(out.Rendering)
	return op
}
