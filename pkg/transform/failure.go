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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrExecution marks a transformer that failed to run or exited non-zero.
	ErrExecution = errors.Base("transform execution failure")
	// ErrRead marks a transformer that succeeded but whose output file could not be read.
	ErrRead = errors.Base("post-transform read failure")
)

// FailureKind distinguishes why an invocation produced no content.
type FailureKind int

const (
	KindExecution FailureKind = iota
	KindRead
)

// String returns a string representation of FailureKind
func (k FailureKind) String() string {
	switch k {
	case KindExecution:
		return "execution"
	case KindRead:
		return "read"
	default:
		return "unknown"
	}
}

// ❌ Failure is the error returned by an Invoker.
type Failure struct {
	Kind    FailureKind
	Message string // stderr, process error text, or read error text
	Cause   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap exposes the kind sentinel and the underlying cause.
func (f *Failure) Unwrap() []error {
	var base error = ErrExecution
	if f.Kind == KindRead {
		base = ErrRead
	}
	if f.Cause == nil {
		return []error{base}
	}
	return []error{base, f.Cause}
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
