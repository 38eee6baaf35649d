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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/chaingate/pkg/diff"
	"github.com/walteh/chaingate/pkg/gate"
)

var _ gate.Discloser = (*ConsoleDiscloser)(nil)

// 🪟 ConsoleDiscloser shows side documents in a terminal panel.
// When Dir is set each side document is also written to Dir/<name>.
type ConsoleDiscloser struct {
	Writer io.Writer
	Dir    string

	mu sync.Mutex
}

// NewConsoleDiscloser creates a discloser writing to w.
func NewConsoleDiscloser(w io.Writer, dir string) *ConsoleDiscloser {
	return &ConsoleDiscloser{Writer: w, Dir: dir}
}

// ShowSideDocument implements gate.Discloser.
func (d *ConsoleDiscloser) ShowSideDocument(ctx context.Context, doc gate.SideDocument) error {
	if d.Dir != "" {
		if err := d.writeFile(doc); err != nil {
			return err
		}
	}

	body := doc.Content
	if doc.Language == "diff" {
		body = diff.Colorize(diff.Rendering(strings.Split(doc.Content, "\n")))
	}
	panel := pterm.DefaultBox.WithTitle(doc.Name).Sprint(body)

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := fmt.Fprintln(d.Writer, panel); err != nil {
		return errors.Errorf("writing side document %s: %w", doc.Name, err)
	}

	zerolog.Ctx(ctx).Debug().Str("name", doc.Name).Str("language", doc.Language).Msg("side document shown")
	return nil
}

func (d *ConsoleDiscloser) writeFile(doc gate.SideDocument) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return errors.Errorf("creating diff directory: %w", err)
	}
	p := filepath.Join(d.Dir, filepath.Base(doc.Name))
	if err := os.WriteFile(p, []byte(doc.Content+"\n"), 0o644); err != nil {
		return errors.Errorf("writing side document %s: %w", p, err)
	}
	return nil
}
