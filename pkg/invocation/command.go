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

package invocation

import (
	"strings"
)

// 📦 Invocation is a ready-to-run transformer command for one file.
type Invocation struct {
	Program string   // Transformer program as configured
	Path    string   // Target file, rewritten in place by the transformer
	Args    []string // Resolved arguments
	Line    string   // Rendered shell command line
}

// String returns the rendered command line
func (i Invocation) String() string {
	return i.Line
}

// 🔨 Build renders the command line for program, path and args.
//
// The path is always double quoted with embedded double quotes escaped.
// Arguments are quoted only when they contain a space. This covers the
// argument shapes Resolve produces and is not general shell escaping.
func Build(program, path string, args []string) Invocation {
	parts := make([]string, 0, len(args)+2)
	parts = append(parts, program, QuotePath(path))
	for _, arg := range args {
		parts = append(parts, quoteArg(arg))
	}

	return Invocation{
		Program: program,
		Path:    path,
		Args:    append([]string(nil), args...),
		Line:    strings.Join(parts, " "),
	}
}

// QuotePath wraps path in double quotes, escaping embedded double quotes.
func QuotePath(path string) string {
	return `"` + strings.ReplaceAll(path, `"`, `\"`) + `"`
}

func quoteArg(arg string) string {
	if strings.Contains(arg, " ") {
		return `"` + arg + `"`
	}
	return arg
}
