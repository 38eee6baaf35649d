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

package transform

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/chaingate/pkg/invocation"
	"gitlab.com/tozd/go/errors"
)

// DefaultMaxOutput bounds each of stdout and stderr.
const DefaultMaxOutput = 10 * 1024 * 1024

// ErrOutputLimit is reported when the transformer writes more than MaxOutput bytes.
var ErrOutputLimit = errors.Base("output limit exceeded")

// 🔌 Invoker runs the transformer for one invocation and returns the
// transformed content. Errors are always *Failure.
type Invoker interface {
	Invoke(ctx context.Context, inv invocation.Invocation) (string, error)
}

// InvokerFunc adapts an in-process transformer to Invoker. It must honour
// the same contract: content on success, a *Failure otherwise.
type InvokerFunc func(ctx context.Context, inv invocation.Invocation) (string, error)

// Invoke implements Invoker.
func (f InvokerFunc) Invoke(ctx context.Context, inv invocation.Invocation) (string, error) {
	return f(ctx, inv)
}

// ReadFileFunc reads the transformed file back.
type ReadFileFunc func(ctx context.Context, path string) ([]byte, error)

// 🐚 ShellInvoker runs the invocation line through sh and re-reads the target
// file, which the transformer rewrites in place.
type ShellInvoker struct {
	Shell     string       // Defaults to "sh"
	MaxOutput int          // Defaults to DefaultMaxOutput
	ReadFile  ReadFileFunc // Defaults to os.ReadFile
	Env       []string     // Nil inherits the current environment
}

// 🏭 NewShellInvoker creates a ShellInvoker with defaults
func NewShellInvoker() *ShellInvoker {
	return &ShellInvoker{}
}

// Invoke implements Invoker.
func (s *ShellInvoker) Invoke(ctx context.Context, inv invocation.Invocation) (string, error) {
	logger := zerolog.Ctx(ctx).With().Str("path", inv.Path).Logger()
	logger.Debug().Str("command", inv.Line).Msg("executing transformer")

	shell := s.Shell
	if shell == "" {
		shell = "sh"
	}
	limit := s.MaxOutput
	if limit <= 0 {
		limit = DefaultMaxOutput
	}

	cmd := exec.CommandContext(ctx, shell, "-c", inv.Line)
	if inv.Path != "" {
		cmd.Dir = filepath.Dir(inv.Path)
	}
	if s.Env != nil {
		cmd.Env = s.Env
	}
	killProcessGroup(cmd)

	stdout := &cappedBuffer{limit: limit}
	stderr := &cappedBuffer{limit: limit}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()

	logger.Debug().Str("stdout", stdout.String()).Str("stderr", stderr.String()).Msg("transformer finished")

	if err != nil {
		logger.Debug().Err(err).Msg("transformer failed")
		return "", executionFailure(ctx, err, stdout, stderr)
	}

	read := s.ReadFile
	if read == nil {
		read = func(_ context.Context, path string) ([]byte, error) {
			return os.ReadFile(path)
		}
	}

	content, err := read(ctx, inv.Path)
	if err != nil {
		logger.Debug().Err(err).Msg("reading processed file")
		return "", &Failure{
			Kind:    KindRead,
			Message: "failed to read processed file: " + err.Error(),
			Cause:   err,
		}
	}

	return string(content), nil
}

func executionFailure(ctx context.Context, err error, stdout, stderr *cappedBuffer) *Failure {
	if stdout.exceeded || stderr.exceeded {
		return &Failure{Kind: KindExecution, Message: ErrOutputLimit.Error(), Cause: ErrOutputLimit}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &Failure{Kind: KindExecution, Message: "transformer cancelled: " + ctxErr.Error(), Cause: ctxErr}
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return &Failure{Kind: KindExecution, Message: msg, Cause: err}
	}
	return &Failure{Kind: KindExecution, Message: err.Error(), Cause: err}
}

// cappedBuffer keeps at most limit bytes and fails writes past it.
type cappedBuffer struct {
	buf      bytes.Buffer
	limit    int
	exceeded bool
}

func (c *cappedBuffer) Write(p []byte) (int, error) {
	if c.buf.Len()+len(p) > c.limit {
		c.exceeded = true
		return 0, ErrOutputLimit
	}
	return c.buf.Write(p)
}

func (c *cappedBuffer) String() string {
	return c.buf.String()
}
