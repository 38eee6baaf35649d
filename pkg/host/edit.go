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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/chaingate/pkg/gate"
)

// ErrSpanOutOfRange is returned when an edit does not fit the buffer.
var ErrSpanOutOfRange = errors.Base("edit span out of range")

// ✏️ ApplyEdit applies edit to text.
func ApplyEdit(text string, edit *gate.EditDescriptor) (string, error) {
	if edit == nil {
		return text, nil
	}
	r := edit.Range
	if r.Start < 0 || r.End < r.Start || r.End > len(text) {
		return "", errors.Errorf("%w: [%d, %d) over %d bytes", ErrSpanOutOfRange, r.Start, r.End, len(text))
	}
	return text[:r.Start] + edit.NewText + text[r.End:], nil
}

// 💾 Persist writes text to path through a temp file and rename, keeping the file mode.
func Persist(ctx context.Context, path, text string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return errors.Errorf("stat %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".chaingate-*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return errors.Errorf("setting file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Errorf("replacing %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(text)).Msg("document persisted")
	return nil
}

// Settle makes the file at path hold text, writing only when the contents differ.
// It reports whether a write happened.
func Settle(ctx context.Context, path, text string) (bool, error) {
	current, err := os.ReadFile(path)
	if err == nil && string(current) == text {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Errorf("reading %s: %w", path, err)
	}
	if err := Persist(ctx, path, text); err != nil {
		return false, err
	}
	return true, nil
}
