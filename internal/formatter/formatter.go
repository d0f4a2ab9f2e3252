package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-acf/internal/ast"
)

// DefaultIndent is one tab, the indentation Steam writes.
const DefaultIndent = "\t"

// Formatter writes an ACF document to an output stream.
type Formatter struct {
	w      io.Writer
	indent string
	depth  int
}

// New returns a new formatter that writes to w. A nil indent selects
// DefaultIndent.
func New(w io.Writer, indent *string) *Formatter {
	ind := DefaultIndent
	if indent != nil {
		ind = *indent
	}
	return &Formatter{w: w, indent: ind}
}

// Format writes the document. Keys are written in sorted order, children
// in document order. It fails for literals containing a double quote,
// which the format cannot represent.
func (f *Formatter) Format(doc *ast.Document) error {
	if doc == nil {
		return nil
	}
	for _, b := range doc.Blocks {
		if err := f.writeBlock(b); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) writeIndent() error {
	if f.indent == "" || f.depth == 0 {
		return nil
	}
	_, err := io.WriteString(f.w, strings.Repeat(f.indent, f.depth))
	return err
}

func (f *Formatter) writeLine(s string) error {
	if err := f.writeIndent(); err != nil {
		return err
	}
	_, err := io.WriteString(f.w, s+"\n")
	return err
}

func (f *Formatter) writeBlock(b *ast.Block) error {
	name, err := quote(b.Name)
	if err != nil {
		return err
	}
	if err := f.writeLine(name); err != nil {
		return err
	}
	if err := f.writeLine("{"); err != nil {
		return err
	}

	f.depth++
	for _, key := range b.Keys() {
		k, err := quote(key)
		if err != nil {
			return err
		}
		v, err := quote(b.Expressions[key])
		if err != nil {
			return err
		}
		if err := f.writeLine(k + "\t\t" + v); err != nil {
			return err
		}
	}
	for _, child := range b.Children {
		if err := f.writeBlock(child); err != nil {
			return err
		}
	}
	f.depth--

	return f.writeLine("}")
}

func quote(s string) (string, error) {
	if strings.ContainsRune(s, '"') {
		return "", fmt.Errorf("acf: cannot write %q: literals cannot contain a double quote", s)
	}
	return `"` + s + `"`, nil
}
