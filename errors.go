package acf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"gopkg.in/warnings.v0"

	"github.com/KimNorgaard/go-acf/internal/parser"
)

// ErrorKind is the top-level category of an Error.
type ErrorKind int

const (
	// ErrUnknown is the zero value, for failures outside the read/parse split.
	ErrUnknown ErrorKind = iota
	// ErrRead means the source could not be read.
	ErrRead
	// ErrParse means the source was read but is not valid ACF.
	ErrParse
	// ErrOption means an Option was given an invalid value.
	ErrOption
)

// Error is returned for every fatal failure of Parse, ParseFile,
// ParseFS and Format, and for invalid options. It is a comparable value: two errors describing the same
// failure are ==, so errors.Is works against a constructed Error.
type Error struct {
	Kind ErrorKind

	// Path names the source that could not be read. Set for ErrRead.
	Path string

	// Parse describes the grammar violation. Set for ErrParse.
	Parse ParseError

	// Detail explains an ErrOption failure.
	Detail string
}

func (e Error) Error() string {
	switch e.Kind {
	case ErrRead:
		return fmt.Sprintf("failed to read '%s'", e.Path)
	case ErrParse:
		return "the provided input could not be parsed: " + e.Parse.Error()
	case ErrOption:
		return "acf: invalid option: " + e.Detail
	default:
		return "an unknown error occurred"
	}
}

// Unwrap returns the ParseError of an ErrParse error and nil otherwise.
func (e Error) Unwrap() error {
	if e.Kind == ErrParse {
		return e.Parse
	}
	return nil
}

// Diagnostics renders the error as hcl diagnostics.
func (e Error) Diagnostics() hcl.Diagnostics {
	switch e.Kind {
	case ErrRead:
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Failed to read file",
			Detail:   fmt.Sprintf("The file %q could not be read.", e.Path),
		}}
	case ErrParse:
		return hcl.Diagnostics{e.Parse.Diagnostic()}
	case ErrOption:
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid option",
			Detail:   e.Detail,
		}}
	default:
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown error",
			Detail:   e.Error(),
		}}
	}
}

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int

const (
	// ParseUnknown covers grammar violations without a more specific kind:
	// unterminated literals, stray characters, a missing '{' and the like.
	ParseUnknown ParseErrorKind = iota
	// ExpectedClosingBrace means a block's '}' was never found.
	ExpectedClosingBrace
	// ExpressionAfterBlock means a key/value pair followed a nested block
	// at the same level.
	ExpressionAfterBlock
	// TooDeep means blocks were nested deeper than MaxDepth allows.
	TooDeep
	// MultipleRoots means a second top-level block was found under
	// SingleRoot.
	MultipleRoots
)

var parseErrorKindNames = map[ParseErrorKind]string{
	ParseUnknown:         "unknown",
	ExpectedClosingBrace: "expected closing brace",
	ExpressionAfterBlock: "expression after block",
	TooDeep:              "too deep",
	MultipleRoots:        "multiple roots",
}

func (k ParseErrorKind) String() string {
	if s, ok := parseErrorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ParseErrorKind(%d)", int(k))
}

// ParseError is a located grammar violation.
//
// For ExpectedClosingBrace, Range starts at the block's opening brace and
// ends where the closing brace was owed.
type ParseError struct {
	Kind    ParseErrorKind
	Range   hcl.Range
	Message string
}

func (e ParseError) Error() string {
	switch {
	case e.Kind == ExpectedClosingBrace:
		return fmt.Sprintf("expected a closing brace within '%s'", formatRange(e.Range))
	case e.Message == "":
		return "an unknown parsing error occurred"
	default:
		return fmt.Sprintf("%s: %s", formatPos(e.Range), e.Message)
	}
}

// Diagnostic returns the failure as an hcl diagnostic whose Subject is
// the error's range.
func (e ParseError) Diagnostic() *hcl.Diagnostic {
	rng := e.Range
	var summary string
	switch e.Kind {
	case ExpectedClosingBrace:
		summary = "Missing closing brace"
	case ExpressionAfterBlock:
		summary = "Key/value pair after nested block"
	case TooDeep:
		summary = "Blocks nested too deeply"
	case MultipleRoots:
		summary = "Multiple root blocks"
	default:
		summary = "Invalid ACF syntax"
	}
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   e.Message,
		Subject:  &rng,
	}
}

func newParseError(err error) ParseError {
	var serr *parser.SyntaxError
	if !errors.As(err, &serr) {
		return ParseError{Kind: ParseUnknown, Message: err.Error()}
	}

	kind := ParseUnknown
	switch serr.Kind {
	case parser.ErrExpectedClosingBrace:
		kind = ExpectedClosingBrace
	case parser.ErrExpressionAfterBlock:
		kind = ExpressionAfterBlock
	case parser.ErrTooDeep:
		kind = TooDeep
	case parser.ErrMultipleRoots:
		kind = MultipleRoots
	}
	return ParseError{Kind: kind, Range: serr.Range, Message: serr.Message}
}

// DuplicateKeyWarning reports a key that overwrote an earlier value in the
// same block. It is only produced with WarnDuplicateKeys and is never
// fatal.
type DuplicateKeyWarning struct {
	Block string
	Key   string
	Range hcl.Range // range of the overwriting key
}

func (w DuplicateKeyWarning) Error() string {
	return fmt.Sprintf("%s: duplicate key %q in block %q; the last value is used", formatPos(w.Range), w.Key, w.Block)
}

// Diagnostic returns the warning as an hcl diagnostic.
func (w DuplicateKeyWarning) Diagnostic() *hcl.Diagnostic {
	rng := w.Range
	return &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  "Duplicate key",
		Detail:   fmt.Sprintf("The key %q appears more than once in block %q; earlier values are discarded.", w.Key, w.Block),
		Subject:  &rng,
	}
}

func isFatal(err error) bool {
	_, ok := err.(DuplicateKeyWarning)
	return !ok
}

// FatalOnly filters the warnings out of an error returned by a parse call
// made with WarnDuplicateKeys, leaving only a fatal error or nil.
func FatalOnly(err error) error {
	return warnings.FatalOnly(err)
}

// Warnings returns the non-fatal warnings carried by err, if any.
func Warnings(err error) []error {
	if l, ok := err.(warnings.List); ok {
		return l.Warnings
	}
	return nil
}

// IsRead reports whether err is an Error of kind ErrRead.
func IsRead(err error) bool {
	var e Error
	return errors.As(err, &e) && e.Kind == ErrRead
}

// IsOption reports whether err is an Error of kind ErrOption.
func IsOption(err error) bool {
	var e Error
	return errors.As(err, &e) && e.Kind == ErrOption
}

// IsParse reports whether err is an Error of kind ErrParse.
func IsParse(err error) bool {
	var e Error
	return errors.As(err, &e) && e.Kind == ErrParse
}

func formatPos(r hcl.Range) string {
	if r.Filename == "" {
		return fmt.Sprintf("line %d, column %d", r.Start.Line, r.Start.Column)
	}
	return fmt.Sprintf("%s:%d,%d", r.Filename, r.Start.Line, r.Start.Column)
}

func formatRange(r hcl.Range) string {
	return strings.TrimPrefix(r.String(), ":")
}
