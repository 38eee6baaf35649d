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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/chaingate/cmd/chaingate/opts"
	"github.com/walteh/chaingate/pkg/diff"
	"github.com/walteh/chaingate/pkg/log"
)

func NewDiffCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <original> <candidate>",
		Short: "Render the unified diff between two files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Errorf("reading original: %w", err)
			}
			candidate, err := os.ReadFile(args[1])
			if err != nil {
				return errors.Errorf("reading candidate: %w", err)
			}

			rendering, err := diff.Render(string(original), string(candidate), filepath.Base(args[0]))
			if err != nil {
				return errors.Errorf("rendering diff: %w", err)
			}
			if rendering.Empty() {
				log.FromContext(cmd.Context()).Info("No differences")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), diff.Colorize(rendering))
			return nil
		},
	}

	return cmd
}
