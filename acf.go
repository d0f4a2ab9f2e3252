package acf

import (
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2"
	"gopkg.in/warnings.v0"

	"github.com/KimNorgaard/go-acf/internal/ast"
	"github.com/KimNorgaard/go-acf/internal/lexer"
	"github.com/KimNorgaard/go-acf/internal/parser"
)

// Document is a parsed ACF file: its top-level blocks in source order.
type Document = ast.Document

// Block is a named block holding key/value pairs and nested blocks.
type Block = ast.Block

// Parse parses ACF source text. On failure it returns a nil document and
// an Error of kind ErrParse; a partial document is never returned.
func Parse(src []byte, opts ...Option) (*Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return parse(src, o)
}

// ParseString is like Parse but takes a string.
func ParseString(src string, opts ...Option) (*Document, error) {
	return Parse([]byte(src), opts...)
}

// ParseFile reads and parses the file at path. If the file cannot be read
// the error is an Error of kind ErrRead naming path.
func ParseFile(path string, opts ...Option) (*Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		o.logger.Debug("acf: read failed", "path", path, "error", err)
		return nil, Error{Kind: ErrRead, Path: path}
	}
	if o.filename == "" {
		o.filename = path
	}
	return parse(src, o)
}

// ParseFS is like ParseFile but reads name from fsys.
func ParseFS(fsys fs.FS, name string, opts ...Option) (*Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		o.logger.Debug("acf: read failed", "path", name, "error", err)
		return nil, Error{Kind: ErrRead, Path: name}
	}
	if o.filename == "" {
		o.filename = name
	}
	return parse(src, o)
}

func parse(src []byte, o *options) (*Document, error) {
	c := warnings.NewCollector(isFatal)

	cfg := parser.Config{
		MaxDepth:   o.maxDepth,
		SingleRoot: o.singleRoot,
	}
	if o.warnDuplicates {
		cfg.OnDuplicate = func(b *ast.Block, key string, rng hcl.Range) {
			_ = c.Collect(DuplicateKeyWarning{Block: b.Name, Key: key, Range: rng})
		}
	}

	p := parser.New(lexer.New(src, o.filename), cfg)
	doc, err := p.Parse()
	if err != nil {
		perr := newParseError(err)
		o.logger.Debug("acf: parse failed",
			"file", o.filename,
			"kind", perr.Kind.String(),
			"line", perr.Range.Start.Line,
			"column", perr.Range.Start.Column,
			"message", perr.Message,
		)
		return nil, Error{Kind: ErrParse, Parse: perr}
	}

	o.logger.Debug("acf: parsed document", "file", o.filename, "blocks", len(doc.Blocks))
	return doc, c.Done()
}
