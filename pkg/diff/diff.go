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

package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gitlab.com/tozd/go/errors"
)

// ContextLines is the number of unchanged lines kept around each hunk.
const ContextLines = 3

// 📄 Rendering is a unified diff, one line per element, with the git style
// header. A nil Rendering means there is nothing to show.
type Rendering []string

// String joins the lines with newlines
func (r Rendering) String() string {
	return strings.Join(r, "\n")
}

// Empty reports whether there is nothing to show
func (r Rendering) Empty() bool {
	return len(r) == 0
}

// 🎯 Render computes the unified diff between original and candidate and
// renders it with a fixed header for name:
//
//	diff --git a/<name> b/<name>
//	--- a/<name>
//	+++ b/<name>
//
// followed by a blank line and every hunk marker and content line in order.
// It returns nil when the diff has no hunk.
func Render(original, candidate, name string) (Rendering, error) {
	raw, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(candidate),
		FromFile: name,
		ToFile:   name,
		Context:  ContextLines,
	})
	if err != nil {
		return nil, errors.Errorf("computing diff for %s: %w", name, err)
	}

	var body []string
	headerDone := false
	for _, line := range strings.Split(raw, "\n") {
		// the library's own file markers come before the first hunk
		if !headerDone {
			if strings.HasPrefix(line, "@@") {
				headerDone = true
			} else {
				continue
			}
		}
		if isDiffLine(line) {
			body = append(body, line)
		}
	}

	if len(body) == 0 {
		return nil, nil
	}

	out := make(Rendering, 0, len(body)+4)
	out = append(out,
		fmt.Sprintf("diff --git a/%s b/%s", name, name),
		fmt.Sprintf("--- a/%s", name),
		fmt.Sprintf("+++ b/%s", name),
		"",
	)
	return append(out, body...), nil
}

func isDiffLine(line string) bool {
	return strings.HasPrefix(line, "@@") ||
		strings.HasPrefix(line, "+") ||
		strings.HasPrefix(line, "-") ||
		strings.HasPrefix(line, " ")
}

// noNewlineMarker follows a last line that has no newline. It keeps "b" and
// "b\n" distinct lines and is dropped from the rendering like any other
// non-diff line.
const noNewlineMarker = "\\ No newline at end of file"

// splitLines splits s into newline terminated lines. A last line without a
// newline is terminated and carries noNewlineMarker.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += "\n" + noNewlineMarker + "\n"
	return lines
}
