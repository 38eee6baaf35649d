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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_document_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogDocumentOperation(context.Background(), DocumentOperation{
					Path:    "src/a.ts",
					Trigger: "manual",
					Outcome: "done",
					Changed: true,
					Added:   2,
					Removed: 1,
				})
			},
			wantLogs: []string{
				"⟳ src/a.ts                            manual   done +2 -1",
			},
		},
		{
			name: "log_batch",
			op: func(t *testing.T, logger *Logger) {
				ctx := context.Background()
				logger.StartBatch(ctx, BatchOperation{Trigger: "manual", Files: 2})
				logger.LogDocumentOperation(ctx, DocumentOperation{Path: "src/a.ts", Trigger: "manual", Outcome: "done", Changed: true})
				logger.LogDocumentOperation(ctx, DocumentOperation{Path: "src/b.ts", Trigger: "manual", Outcome: "no-op"})
				logger.EndBatch(ctx)
			},
			wantLogs: []string{
				"◆ manual • 2 document(s)",
				"⟳ src/a.ts                            manual   done",
				"• src/b.ts                            manual   no-op",
				"✅ 2 processed, 1 changed, 0 failed",
			},
		},
		{
			name: "log_batch_with_failure",
			op: func(t *testing.T, logger *Logger) {
				ctx := context.Background()
				logger.StartBatch(ctx, BatchOperation{Trigger: "save", Files: 1})
				logger.LogDocumentOperation(ctx, DocumentOperation{Path: "src/b.ts", Trigger: "save", Outcome: "failed", Failed: true})
				logger.EndBatch(ctx)
			},
			wantLogs: []string{
				"◆ save • 1 document(s)",
				"✗ src/b.ts                            save     failed",
				"⚠️  1 processed, 0 changed, 1 failed",
			},
		},
		{
			name: "end_batch_without_start",
			op: func(t *testing.T, logger *Logger) {
				logger.EndBatch(context.Background())
				logger.Info("still here")
			},
			wantLogs: []string{
				"ℹ️  still here",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_warning",
			op: func(t *testing.T, logger *Logger) {
				logger.Warningf("%s saved unmodified", "x.ts")
			},
			wantLogs: []string{
				"⚠️  x.ts saved unmodified",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("transforming documents")
			},
			wantLogs: []string{
				"chaingate • transforming documents",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerMirrorsToZerolog(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	structured := &bytes.Buffer{}
	logger := New(io.Discard, zerolog.New(structured))

	logger.Error("Transform failed: boom")
	logger.LogDocumentOperation(context.Background(), DocumentOperation{Path: "x.ts", Trigger: "save", Outcome: "done", Changed: true})

	out := structured.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"message":"Transform failed: boom"`)
	assert.Contains(t, out, `"path":"x.ts"`)
	assert.Contains(t, out, `"changed":true`)
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestDocumentOperationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   DocumentOperation
		want string
	}{
		{
			name: "changed_document",
			op:   DocumentOperation{Path: "src/a.ts", Trigger: "manual", Outcome: "done", Changed: true, Added: 2, Removed: 1},
			want: "⟳ src/a.ts                            manual   done +2 -1",
		},
		{
			name: "failed_document",
			op:   DocumentOperation{Path: "src/b.ts", Trigger: "save", Outcome: "failed", Failed: true},
			want: "✗ src/b.ts                            save     failed",
		},
		{
			name: "skipped_document",
			op:   DocumentOperation{Path: "README.md", Trigger: "manual", Outcome: "skipped", Skipped: true},
			want: "- README.md                           manual   skipped",
		},
		{
			name: "unchanged_document",
			op:   DocumentOperation{Path: "src/c.ts", Trigger: "manual", Outcome: "no-op"},
			want: "• src/c.ts                            manual   no-op",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			logger.LogDocumentOperation(context.Background(), tt.op)

			assert.Equal(t, tt.want, strings.TrimSpace(buf.String()))
		})
	}
}
