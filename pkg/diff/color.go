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
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.Bold)
	hunkColor    = color.New(color.FgCyan)
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
)

// 🎨 Colorize returns r with terminal colours, for console display.
func Colorize(r Rendering) string {
	lines := make([]string, 0, len(r))
	for i, line := range r {
		switch {
		case i < 3:
			lines = append(lines, headerColor.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			lines = append(lines, hunkColor.Sprint(line))
		case strings.HasPrefix(line, "+"):
			lines = append(lines, addedColor.Sprint(line))
		case strings.HasPrefix(line, "-"):
			lines = append(lines, removedColor.Sprint(line))
		default:
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// Stat counts added and removed content lines.
func Stat(r Rendering) (added, removed int) {
	for i, line := range r {
		if i < 4 {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}
