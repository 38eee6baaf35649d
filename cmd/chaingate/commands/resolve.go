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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/chaingate/cmd/chaingate/opts"
	"github.com/walteh/chaingate/pkg/gate"
	"github.com/walteh/chaingate/pkg/host"
	"github.com/walteh/chaingate/pkg/invocation"
)

func NewResolveCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <file>",
		Short: "Print the transformer command for a document",
		Long: `Resolve prints the configuration sources, the resolved transformer
arguments and the full command line for a document without running anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path, err := filepath.Abs(args[0])
			if err != nil {
				return errors.Errorf("resolving path: %w", err)
			}
			cfg, err := o.LoadConfig(ctx, path)
			if err != nil {
				return err
			}

			doc := host.NewFileDocument(path, "")
			resolved := invocation.Resolve(cfg.Transform)
			inv := invocation.Build(cfg.Command, path, resolved)

			sources := "defaults"
			if s := cfg.Sources(); len(s) > 0 {
				sources = "defaults, " + strings.Join(s, ", ")
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "sources:  %s\n", sources)
			fmt.Fprintf(w, "eligible: %t\n", gate.EligibilityFromConfig(cfg).Eligible(doc))
			fmt.Fprintf(w, "args:     %s\n", strings.Join(resolved, " "))
			fmt.Fprintf(w, "command:  %s\n", inv.Line)
			return nil
		},
	}

	return cmd
}
