package acf

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/KimNorgaard/go-acf/internal/parser"
)

// Option configures Parse, ParseFile, ParseFS, Marshal and Unmarshal.
// Options that do not apply to an operation are ignored by it.
type Option func(*options) error

type options struct {
	maxDepth       int
	singleRoot     bool
	warnDuplicates bool
	filename       string
	logger         *slog.Logger
	indent         *string
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		maxDepth: parser.DefaultMaxDepth,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, Error{Kind: ErrOption, Detail: err.Error()}
		}
	}
	return o, nil
}

// MaxDepth sets the maximum block nesting depth accepted by the parser.
// Deeper input fails with a TooDeep ParseError instead of exhausting the
// stack. Top-level blocks are at depth 1.
//
// The depth n must be a positive integer. The default is 1000.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return errors.New("max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// SingleRoot rejects documents with more than one top-level block.
func SingleRoot() Option {
	return func(o *options) error {
		o.singleRoot = true
		return nil
	}
}

// WarnDuplicateKeys makes a successful parse return the document together
// with a non-nil error listing a DuplicateKeyWarning for every overwritten
// key. Use FatalOnly to separate these from real failures.
func WarnDuplicateKeys() Option {
	return func(o *options) error {
		o.warnDuplicates = true
		return nil
	}
}

// Filename sets the name recorded in source ranges. ParseFile and ParseFS
// default it to the path they read.
func Filename(name string) Option {
	return func(o *options) error {
		o.filename = name
		return nil
	}
}

// WithLogger sets the logger used for debug output. The default is
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		o.logger = l
		return nil
	}
}

// Indent sets the indentation written by Marshal for each nesting level.
// It may only contain spaces and tabs; the default is a single tab.
func Indent(s string) Option {
	return func(o *options) error {
		if strings.Trim(s, " \t") != "" {
			return errors.New("indent must contain only spaces and tabs")
		}
		o.indent = &s
		return nil
	}
}
