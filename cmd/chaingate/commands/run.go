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

	"github.com/spf13/cobra"

	"github.com/walteh/chaingate/cmd/chaingate/opts"
	"github.com/walteh/chaingate/pkg/log"
)

func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>...",
		Short: "Transform documents now",
		Long: `Run invokes the transformer on each document as an explicit command.
For each file it will:
1. Resolve the configuration layers that apply to it
2. Run the transformer with the resolved arguments
3. Show the unified diff when show_diff is enabled
4. Write the transformed content back`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			console := log.FromContext(ctx)

			console.Header("manual run")
			console.StartBatch(ctx, log.BatchOperation{Trigger: "manual", Files: len(args)})
			defer console.EndBatch(ctx)

			return o.Runner().Run(ctx, args, func(ctx context.Context, path string) error {
				res, err := processManual(ctx, o, path)
				if err != nil {
					console.LogDocumentOperation(ctx, documentOperation(path, "manual", nil))
					return err
				}
				console.LogDocumentOperation(ctx, documentOperation(path, "manual", res.outcome))
				return res.outcome.Err
			})
		},
	}

	return cmd
}
