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
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/chaingate/cmd/chaingate/opts"
	"github.com/walteh/chaingate/pkg/host"
	"github.com/walteh/chaingate/pkg/log"
)

func NewSaveCmd(o *opts.RootOpts) *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "save <file>...",
		Short: "Run the format-on-save hook",
		Long: `Save runs the "document is about to be saved" hook for each document.
When format_on_save is enabled and the document is eligible, the transformer
runs within save_timeout and its output is saved. Any failure saves the
document unmodified.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if toStdout {
				// keep notifications out of the printed document
				ctx = log.NewContext(ctx, log.New(o.Stderr, o.ZLog))
			}
			console := log.FromContext(ctx)

			console.Header("format on save")
			console.StartBatch(ctx, log.BatchOperation{Trigger: "save", Files: len(args)})
			defer console.EndBatch(ctx)

			var mu sync.Mutex
			return o.Runner().Run(ctx, args, func(ctx context.Context, path string) error {
				doc, err := host.LoadDocument(ctx, path)
				if err != nil {
					console.LogDocumentOperation(ctx, documentOperation(path, "save", nil))
					return err
				}
				cfg, err := o.LoadConfig(ctx, doc.Path())
				if err != nil {
					console.LogDocumentOperation(ctx, documentOperation(path, "save", nil))
					return err
				}
				g, err := o.NewGate(ctx, cfg)
				if err != nil {
					return errors.Errorf("creating gate: %w", err)
				}

				res := g.WillSave(ctx, doc, cfg)
				if res.Err != nil {
					zerolog.Ctx(ctx).Debug().Err(res.Err).Str("path", doc.Path()).Msg("saving unmodified content")
					console.Warningf("%s saved unmodified", path)
				}

				text, err := host.ApplyEdit(doc.Text(), res.Edit)
				if err != nil {
					text = doc.Text()
				}

				if toStdout {
					// leave the file as it was before the hook ran
					if _, err := host.Settle(ctx, doc.Path(), doc.Text()); err != nil {
						return err
					}
					mu.Lock()
					fmt.Fprint(o.Stdout, text)
					mu.Unlock()
				} else if _, err := host.Settle(ctx, doc.Path(), text); err != nil {
					return err
				}

				op := documentOperation(path, "save", res.Outcome)
				if res.Outcome == nil && res.Err == nil {
					op = log.DocumentOperation{Path: path, Trigger: "save", Outcome: "unchanged"}
				}
				console.LogDocumentOperation(ctx, op)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the saved content instead of writing it")

	return cmd
}
