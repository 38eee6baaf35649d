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

package host

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📄 FileDocument is a snapshot of a file on disk.
type FileDocument struct {
	path     string
	text     string
	language string
}

// NewFileDocument builds a document from text already in memory.
func NewFileDocument(path, text string) *FileDocument {
	return &FileDocument{
		path:     path,
		text:     text,
		language: LanguageID(path),
	}
}

func (d *FileDocument) Text() string       { return d.text }
func (d *FileDocument) Path() string       { return d.path }
func (d *FileDocument) LanguageID() string { return d.language }

// 🎯 LoadDocument reads path into a document snapshot.
func LoadDocument(ctx context.Context, path string) (*FileDocument, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("resolving path %s: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Errorf("reading document: %w", err)
	}

	doc := NewFileDocument(abs, string(data))
	zerolog.Ctx(ctx).Debug().
		Str("path", abs).
		Str("language", doc.language).
		Int("bytes", len(data)).
		Msg("document loaded")

	return doc, nil
}

// LanguageID classifies path by extension.
func LanguageID(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return "typescript"
	case ".tsx":
		return "typescriptreact"
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".jsx":
		return "javascriptreact"
	default:
		return "plaintext"
	}
}
