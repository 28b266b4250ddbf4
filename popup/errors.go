// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popup/errors.go
// Summary: Error taxonomy for popup operations.

package popup

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidContent means the popup has no usable buffer.
	ErrInvalidContent = errors.New("popup has no valid content buffer")

	// ErrInvalidWindow means the operation needs a visible popup.
	ErrInvalidWindow = errors.New("popup is not visible")

	// ErrDestroyed is returned for operations on a destroyed popup.
	ErrDestroyed = errors.New("popup was destroyed")
)

// OperationError wraps a failure raised while running a named operation.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("popup %s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

func wrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return err
	}
	return &OperationError{Op: op, Err: err}
}
