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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/chaingate/cmd/chaingate/opts"
	"github.com/walteh/chaingate/pkg/invocation"
	"github.com/walteh/chaingate/pkg/transform"
)

type harness struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	calls  atomic.Int32

	mu    sync.Mutex
	lines []string
}

func execute(t *testing.T, h *harness, invoke transform.InvokerFunc, args ...string) error {
	t.Helper()

	color.NoColor = true
	pterm.DisableColor()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableColor()
	})

	h.stdout = &bytes.Buffer{}
	h.stderr = &bytes.Buffer{}

	o := &opts.RootOpts{
		Stdout:  h.stdout,
		Stderr:  h.stderr,
		Invoker: transform.InvokerFunc(func(ctx context.Context, inv invocation.Invocation) (string, error) {
			h.calls.Add(1)
			h.mu.Lock()
			h.lines = append(h.lines, inv.Line)
			h.mu.Unlock()
			return invoke(ctx, inv)
		}),
	}

	cmd := newRootCmd(o)
	cmd.SetOut(h.stdout)
	cmd.SetErr(h.stderr)
	cmd.SetArgs(append([]string{"--no-user-config"}, args...))
	return cmd.Execute()
}

func returning(content string) transform.InvokerFunc {
	return func(ctx context.Context, inv invocation.Invocation) (string, error) {
		return content, nil
	}
}

func failing(kind transform.FailureKind, msg string) transform.InvokerFunc {
	return func(ctx context.Context, inv invocation.Invocation) (string, error) {
		return "", &transform.Failure{Kind: kind, Message: msg}
	}
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func readDoc(t *testing.T, p string) string {
	t.Helper()
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(data)
}

func TestRunCommand(t *testing.T) {
	t.Run("applies_and_shows_diff", func(t *testing.T) {
		h := &harness{}
		p := writeDoc(t, "x.ts", "a?.b;\n")

		err := execute(t, h, returning("a && a.b;\n"), "run", p)
		require.NoError(t, err)

		assert.Equal(t, "a && a.b;\n", readDoc(t, p))
		out := h.stdout.String()
		assert.Contains(t, out, "x.ts.diff")
		assert.Contains(t, out, "-a?.b;")
		assert.Contains(t, out, "+a && a.b;")
		assert.Contains(t, out, "chaingate • manual run")
		assert.Contains(t, out, "File updated")
		assert.Contains(t, out, "1 processed, 1 changed, 0 failed")
	})

	t.Run("show_diff_disabled", func(t *testing.T) {
		h := &harness{}
		p := writeDoc(t, "x.ts", "a?.b;\n")

		err := execute(t, h, returning("a && a.b;\n"), "run", "--show-diff=false", p)
		require.NoError(t, err)

		assert.Equal(t, "a && a.b;\n", readDoc(t, p))
		assert.NotContains(t, h.stdout.String(), "x.ts.diff")
		assert.NotContains(t, h.stdout.String(), "File updated")
	})

	t.Run("transform_failure", func(t *testing.T) {
		h := &harness{}
		p := writeDoc(t, "x.ts", "a?.b;\n")

		err := execute(t, h, failing(transform.KindExecution, "parse error"), "run", p)
		require.Error(t, err)

		assert.Equal(t, "a?.b;\n", readDoc(t, p), "a failed run leaves the document as it was")
		assert.Contains(t, h.stdout.String(), "Transform failed: parse error")
	})

	t.Run("ineligible_document", func(t *testing.T) {
		h := &harness{}
		p := writeDoc(t, "notes.md", "# notes\n")

		err := execute(t, h, returning("changed"), "run", p)
		require.NoError(t, err)

		assert.Equal(t, int32(0), h.calls.Load())
		assert.Equal(t, "# notes\n", readDoc(t, p))
		assert.Contains(t, h.stdout.String(), "skipped")
	})

	t.Run("no_change", func(t *testing.T) {
		h := &harness{}
		p := writeDoc(t, "x.js", "a && a.b;\n")

		err := execute(t, h, returning("a && a.b;\n"), "run", p)
		require.NoError(t, err)

		assert.NotContains(t, h.stdout.String(), "File updated")
		assert.Contains(t, h.stdout.String(), "no-op")
	})

	t.Run("flag_overrides_reach_invocation", func(t *testing.T) {
		h := &harness{}
		p := writeDoc(t, "x.ts", "a?.b;\n")

		err := execute(t, h, returning("a?.b;\n"), "run", "--skip-none", "--skip-only", "r1,r2", p)
		require.NoError(t, err)

		require.Len(t, h.lines, 1)
		assert.Equal(t, `npx chainsafe "`+p+`" --skip-none --skip-only r1 r2`, h.lines[0])
	})

	t.Run("async_batch_continues_after_failure", func(t *testing.T) {
		h := &harness{}
		good := writeDoc(t, "good.ts", "a?.b;\n")
		bad := writeDoc(t, "bad.ts", "broken\n")

		invoke := func(ctx context.Context, inv invocation.Invocation) (string, error) {
			if filepath.Base(inv.Path) == "bad.ts" {
				return "", &transform.Failure{Kind: transform.KindExecution, Message: "parse error"}
			}
			return "a && a.b;\n", nil
		}

		err := execute(t, h, invoke, "run", "--async", "--show-diff=false", good, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.ts")

		assert.Equal(t, "a && a.b;\n", readDoc(t, good))
		assert.Equal(t, "broken\n", readDoc(t, bad))
	})
}

func TestSaveCommand(t *testing.T) {
	t.Run("format_on_save_disabled", func(t *testing.T) {
		h := &harness{}
		p := writeDoc(t, "x.ts", "a?.b;\n")

		err := execute(t, h, returning("a && a.b;\n"), "save", p)
		require.NoError(t, err)

		assert.Equal(t, int32(0), h.calls.Load())
		assert.Equal(t, "a?.b;\n", readDoc(t, p))
	})

	t.Run("format_on_save_enabled", func(t *testing.T) {
		h := &harness{}
		p := writeDoc(t, "x.ts", "a?.b;\n")

		err := execute(t, h, returning("a && a.b;\n"), "save", "--format-on-save", p)
		require.NoError(t, err)

		assert.Equal(t, "a && a.b;\n", readDoc(t, p))
		assert.NotContains(t, h.stdout.String(), "x.ts.diff", "save runs never disclose")
	})

	t.Run("failure_saves_unmodified", func(t *testing.T) {
		h := &harness{}
		p := writeDoc(t, "x.ts", "a?.b;\n")

		err := execute(t, h, failing(transform.KindRead, "failed to read processed file: gone"), "save", "--format-on-save", p)
		require.NoError(t, err, "the save hook fails open")

		assert.Equal(t, "a?.b;\n", readDoc(t, p))
		assert.Contains(t, h.stdout.String(), "Transform output unavailable: failed to read processed file: gone")
		assert.Contains(t, h.stdout.String(), "x.ts saved unmodified")
	})

	t.Run("stdout_failure_keeps_notifications_out", func(t *testing.T) {
		h := &harness{}
		p := writeDoc(t, "x.ts", "a?.b;\n")

		err := execute(t, h, failing(transform.KindExecution, "parse error"), "save", "--format-on-save", "--stdout", p)
		require.NoError(t, err)

		assert.Equal(t, "a?.b;\n", h.stdout.String(), "only the document reaches stdout")
		assert.Contains(t, h.stderr.String(), "Transform failed: parse error")
		assert.Contains(t, h.stderr.String(), "x.ts saved unmodified")
	})

	t.Run("stdout", func(t *testing.T) {
		h := &harness{}
		p := writeDoc(t, "x.ts", "a?.b;\n")

		err := execute(t, h, returning("a && a.b;\n"), "save", "--format-on-save", "--stdout", p)
		require.NoError(t, err)

		assert.Equal(t, "a && a.b;\n", h.stdout.String())
		assert.Equal(t, "a?.b;\n", readDoc(t, p), "--stdout leaves the file alone")
		assert.Contains(t, h.stderr.String(), "chaingate • format on save")
	})
}

func TestResolveCommand(t *testing.T) {
	h := &harness{}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".chaingate.yaml"), []byte("apply_only: [optional-chaining]\n"), 0o644))
	p := filepath.Join(dir, "x.ts")
	require.NoError(t, os.WriteFile(p, []byte("a?.b;\n"), 0o644))

	err := execute(t, h, returning(""), "resolve", p)
	require.NoError(t, err)

	out := h.stdout.String()
	assert.Contains(t, out, "sources:  defaults, "+filepath.Join(dir, ".chaingate.yaml"))
	assert.Contains(t, out, "eligible: true")
	assert.Contains(t, out, "args:     --apply-only optional-chaining")
	assert.Contains(t, out, `command:  npx chainsafe "`+p+`" --apply-only optional-chaining`)
	assert.Equal(t, int32(0), h.calls.Load(), "resolve never runs the transformer")
}

func TestDiffCommand(t *testing.T) {
	h := &harness{}
	a := writeDoc(t, "x.ts", "a?.b;\n")
	b := writeDoc(t, "y.ts", "a && a.b;\n")

	err := execute(t, h, returning(""), "diff", a, b)
	require.NoError(t, err)

	want := "diff --git a/x.ts b/x.ts\n--- a/x.ts\n+++ b/x.ts\n\n@@ -1 +1 @@\n-a?.b;\n+a && a.b;\n"
	assert.Equal(t, want, h.stdout.String())

	err = execute(t, h, returning(""), "diff", a, a)
	require.NoError(t, err)
	assert.Contains(t, h.stdout.String(), "No differences")
}

func TestVersionCommand(t *testing.T) {
	h := &harness{}
	err := execute(t, h, returning(""), "version")
	require.NoError(t, err)
	assert.Contains(t, h.stdout.String(), "chaingate ")
	assert.Contains(t, h.stdout.String(), "transformer: npx chainsafe")

	err = execute(t, h, returning(""), "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, h.stdout.String(), `"default_transformer": "npx chainsafe"`)
}
