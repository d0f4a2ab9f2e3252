package acf

import (
	"bytes"
	"io"

	"github.com/KimNorgaard/go-acf/internal/formatter"
	"github.com/KimNorgaard/go-acf/internal/marshaler"
)

// Marshal returns the ACF text of doc in the layout Steam writes: one
// literal or brace per line, tab indentation, key and value separated by
// two tabs. Keys are sorted, so the output is deterministic. Parsing the
// result yields a document Equal to doc.
//
// Literals containing a double quote cannot be represented and make
// Marshal fail.
func Marshal(doc *Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, opts...).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encoder writes ACF documents to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the ACF text of doc to the stream.
func (e *Encoder) Encode(doc *Document) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}
	return formatter.New(e.w, o.indent).Format(doc)
}

// MarshalValue encodes a Go value as a document with a single root block
// called name. It is the inverse of Unmarshal: struct fields use the same
// `acf` tags, scalars become key/value pairs with booleans written as "1"
// and "0", and struct, map and slice fields become child blocks. The
// `omitempty` tag option skips zero values.
func MarshalValue(name string, v any, opts ...Option) ([]byte, error) {
	b, err := marshaler.Marshal(name, v)
	if err != nil {
		return nil, err
	}
	return Marshal(&Document{Blocks: []*Block{b}}, opts...)
}
