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

package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/walteh/chaingate/cmd/chaingate/commands"
	"github.com/walteh/chaingate/cmd/chaingate/opts"
	"github.com/walteh/chaingate/pkg/config"
	"github.com/walteh/chaingate/pkg/log"
	"github.com/walteh/chaingate/pkg/transform"
)

// overrideFlags are the configuration keys settable from the command line.
type overrideFlags struct {
	skipNone       bool
	applyOnly      []string
	skipOnly       []string
	addToSkip      []string
	removeFromSkip []string
	showDiff       bool
	formatOnSave   bool
	command        string
	diffDir        string
	saveTimeout    time.Duration
}

func newRootCmd(o *opts.RootOpts) *cobra.Command {
	var of overrideFlags

	cmd := &cobra.Command{
		Use:   "chaingate",
		Short: "Gate documents through an external code transformer",
		Long: `chaingate runs an external transformer (npx chainsafe by default) over
script documents, shows what it changed as a unified diff, and writes the
result back. It can run on demand or as a format-on-save hook.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd, o)
			o.Overrides = of.layer(cmd.Flags())
			if o.Invoker == nil {
				o.Invoker = transform.NewShellInvoker()
			}
			return nil
		},
	}

	addRootFlags(cmd, o, &of)

	cmd.AddCommand(
		commands.NewRunCmd(o),
		commands.NewSaveCmd(o),
		commands.NewResolveCmd(o),
		commands.NewDiffCmd(o),
		newVersionCmd(),
	)

	return cmd
}

func addRootFlags(cmd *cobra.Command, o *opts.RootOpts, of *overrideFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&o.ConfigFile, "config", "c", "", "explicit config file layer")
	pf.BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	pf.BoolVar(&o.Async, "async", false, "process documents concurrently")
	pf.IntVar(&o.Jobs, "jobs", 0, "concurrent documents with --async (0 means default)")
	pf.BoolVar(&o.SkipUser, "no-user-config", false, "ignore the user config file")

	pf.BoolVar(&of.skipNone, "skip-none", false, "pass --skip-none to the transformer")
	pf.StringSliceVar(&of.applyOnly, "apply-only", nil, "apply only these rules")
	pf.StringSliceVar(&of.skipOnly, "skip-only", nil, "skip only these rules")
	pf.StringSliceVar(&of.addToSkip, "skip", nil, "add rules to the default skip list")
	pf.StringSliceVar(&of.removeFromSkip, "no-skip", nil, "remove rules from the default skip list")
	pf.BoolVar(&of.showDiff, "show-diff", true, "show the diff on manual runs")
	pf.BoolVar(&of.formatOnSave, "format-on-save", false, "enable the save hook")
	pf.StringVar(&of.command, "command", "", "transformer program")
	pf.StringVar(&of.diffDir, "diff-dir", "", "also write rendered diffs to this directory")
	pf.DurationVar(&of.saveTimeout, "save-timeout", 0, "bound on a save-triggered run")
}

// layer builds the flag layer from the flags the user actually set.
func (of *overrideFlags) layer(fs *pflag.FlagSet) *config.Layer {
	l := &config.Layer{Source: "flags"}
	if fs.Changed("skip-none") {
		l.SkipNone = &of.skipNone
	}
	if fs.Changed("apply-only") {
		l.ApplyOnly = &of.applyOnly
	}
	if fs.Changed("skip-only") {
		l.SkipOnly = &of.skipOnly
	}
	if fs.Changed("skip") {
		l.AddToSkip = &of.addToSkip
	}
	if fs.Changed("no-skip") {
		l.RemoveFromSkip = &of.removeFromSkip
	}
	if fs.Changed("show-diff") {
		l.ShowDiff = &of.showDiff
	}
	if fs.Changed("format-on-save") {
		l.FormatOnSave = &of.formatOnSave
	}
	if fs.Changed("command") {
		l.Command = &of.command
	}
	if fs.Changed("diff-dir") {
		l.DiffDir = &of.diffDir
	}
	if fs.Changed("save-timeout") {
		s := of.saveTimeout.String()
		l.SaveTimeout = &s
	}
	return l
}

func setupLogging(cmd *cobra.Command, o *opts.RootOpts) {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}

	if o.Stdout == nil {
		o.Stdout = cmd.OutOrStdout()
	}
	if o.Stderr == nil {
		o.Stderr = cmd.ErrOrStderr()
	}

	o.ZLog = zerolog.New(zerolog.ConsoleWriter{Out: o.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()

	ctx := o.ZLog.WithContext(cmd.Context())
	ctx = log.NewContext(ctx, log.New(o.Stdout, o.ZLog))
	cmd.SetContext(ctx)
}

func main() {
	o := &opts.RootOpts{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	if err := newRootCmd(o).Execute(); err != nil {
		log.New(os.Stderr, o.ZLog).Error(err.Error())
		os.Exit(1)
	}
}
