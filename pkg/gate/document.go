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

package gate

import (
	"context"
)

// 📄 Document is the host's view of the document being transformed.
type Document interface {
	// Text returns the full current content.
	Text() string
	// Path returns the file-system path the transformer rewrites.
	Path() string
	// LanguageID returns the host's content type, e.g. "typescript".
	LanguageID() string
}

// InvocationContext tells a manual command apart from a save-triggered run.
type InvocationContext struct {
	IsManualCommand bool
}

// Trigger names the context for logs.
func (c InvocationContext) Trigger() string {
	if c.IsManualCommand {
		return "manual"
	}
	return "save"
}

// Span is a byte range [Start, End) over the snapshot taken at entry.
type Span struct {
	Start int
	End   int
}

// ✏️ EditDescriptor replaces the whole document with NewText.
type EditDescriptor struct {
	Range   Span
	NewText string
}

// FullDocumentEdit builds the descriptor replacing all of snapshot.
func FullDocumentEdit(snapshot, newText string) *EditDescriptor {
	return &EditDescriptor{
		Range:   Span{Start: 0, End: len(snapshot)},
		NewText: newText,
	}
}

// 🪟 SideDocument is an ephemeral document hosting rendered diff text.
type SideDocument struct {
	Name     string // e.g. "x.ts.diff"
	Language string // always "diff"
	Content  string
}

// 🔌 Discloser shows a side document beside the primary document.
type Discloser interface {
	ShowSideDocument(ctx context.Context, doc SideDocument) error
}

// 📢 Notifier surfaces user-visible messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
