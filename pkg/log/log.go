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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent document entries
	nameWidth    = 35 // Base width for the document path
	triggerWidth = 8  // Width for the trigger
	outcomeWidth = 15 // Width for the outcome text
)

// 🎯 DocumentOperation is one processed document
type DocumentOperation struct {
	Path    string // Document path
	Trigger string // manual or save
	Outcome string // Final pipeline state
	Changed bool   // An edit was produced
	Failed  bool   // The run ended in failure
	Skipped bool   // The document was not eligible
	Added   int    // Added lines in the rendered diff
	Removed int    // Removed lines in the rendered diff
}

// 📦 BatchOperation groups the documents of one command
type BatchOperation struct {
	Trigger string // manual or save
	Files   int    // Number of documents
}

// 🎯 Logger writes user-facing lines to the console and mirrors them to zerolog
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	batch      *BatchOperation
	operations []DocumentOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatDocumentOperation formats a document operation for display
func (l *Logger) formatDocumentOperation(op DocumentOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Failed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.Changed:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case op.Skipped:
		symbol = '-'
		symbolColor = color.FgYellow
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	outcome := op.Outcome
	if op.Added > 0 || op.Removed > 0 {
		outcome = fmt.Sprintf("%s +%d -%d", outcome, op.Added, op.Removed)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", triggerWidth, op.Trigger)),
		fmt.Sprintf("%-*s", outcomeWidth, outcome))
}

// 📝 LogDocumentOperation logs a processed document
func (l *Logger) LogDocumentOperation(ctx context.Context, op DocumentOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatDocumentOperation(op))

	l.zlog.Info().
		Str("path", op.Path).
		Str("trigger", op.Trigger).
		Str("outcome", op.Outcome).
		Bool("changed", op.Changed).
		Bool("failed", op.Failed).
		Bool("skipped", op.Skipped).
		Int("added", op.Added).
		Int("removed", op.Removed).
		Msg("document processed")
}

// 📝 StartBatch starts a new batch of documents
func (l *Logger) StartBatch(ctx context.Context, op BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.batch = &op
	l.operations = nil

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Trigger),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d document(s)", op.Files))

	l.zlog.Info().
		Str("trigger", op.Trigger).
		Int("files", op.Files).
		Msg("starting batch")
}

// 📝 EndBatch ends the current batch and prints a summary
func (l *Logger) EndBatch(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.batch == nil {
		return
	}

	var changed, failed int
	for _, op := range l.operations {
		if op.Changed {
			changed++
		}
		if op.Failed {
			failed++
		}
	}

	summary := fmt.Sprintf("%d processed, %d changed, %d failed", len(l.operations), changed, failed)
	if failed > 0 {
		fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(summary))
	} else {
		fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(summary))
	}

	l.zlog.Info().
		Str("trigger", l.batch.Trigger).
		Int("files", len(l.operations)).
		Int("changed", changed).
		Int("failed", failed).
		Msg("batch complete")

	l.batch = nil
	l.operations = nil
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("chaingate")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
