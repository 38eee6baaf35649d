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
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/walteh/chaingate/pkg/config"
)

// 🏷️ buildInfo describes the chaingate binary and the transformer it drives by default
type buildInfo struct {
	Module      string `json:"module"`
	Version     string `json:"version"`
	Revision    string `json:"revision,omitempty"`
	Dirty       bool   `json:"dirty,omitempty"`
	Go          string `json:"go"`
	Platform    string `json:"platform"`
	Transformer string `json:"default_transformer"`
}

func readBuildInfo() buildInfo {
	info := buildInfo{
		Module:      "github.com/walteh/chaingate",
		Version:     "dev",
		Go:          runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		Transformer: config.DefaultCommand,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if bi.Main.Path != "" {
		info.Module = bi.Main.Path
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

func (b buildInfo) write(w io.Writer) error {
	version := b.Version
	if b.Revision != "" {
		version += " (" + b.Revision
		if b.Dirty {
			version += ", dirty"
		}
		version += ")"
	}
	_, err := fmt.Fprintf(w, "chaingate %s\n  module:      %s\n  go:          %s %s\n  transformer: %s\n",
		version, b.Module, b.Go, b.Platform, b.Transformer)
	return err
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := readBuildInfo()
			if !asJSON {
				return info.write(cmd.OutOrStdout())
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}
