package parser

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// ErrorKind classifies a syntax error.
type ErrorKind int

const (
	// ErrSyntax is any grammar violation without a more specific kind.
	ErrSyntax ErrorKind = iota
	// ErrExpectedClosingBrace means a block was never closed.
	ErrExpectedClosingBrace
	// ErrExpressionAfterBlock means a key/value pair followed a nested
	// block at the same level.
	ErrExpressionAfterBlock
	// ErrTooDeep means blocks were nested beyond Config.MaxDepth.
	ErrTooDeep
	// ErrMultipleRoots means a second top-level block was found while
	// Config.SingleRoot was set.
	ErrMultipleRoots
)

// SyntaxError is a single located parse failure.
type SyntaxError struct {
	Kind    ErrorKind
	Range   hcl.Range
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Range, e.Message)
}
