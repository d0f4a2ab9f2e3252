// Package ast defines the tree produced by parsing an ACF document.
package ast

import (
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2"
)

// Document is the root of a parsed ACF file: the top-level blocks in
// source order.
type Document struct {
	Blocks []*Block
}

// Block is a named, brace-delimited entry.
//
// Expressions holds the key/value pairs of the block. When a key occurs
// more than once the last occurrence wins. Children holds nested blocks
// in source order.
type Block struct {
	Name        string
	Expressions map[string]string
	Children    []*Block

	// Range spans the whole block, from the name literal to the closing
	// brace. NameRange covers the name literal only.
	Range     hcl.Range
	NameRange hcl.Range
}

// Root returns the first top-level block, or nil for an empty document.
func (d *Document) Root() *Block {
	if d == nil || len(d.Blocks) == 0 {
		return nil
	}
	return d.Blocks[0]
}

// Find walks the document by block names. The first name selects a
// top-level block, each following name selects a child of the previous
// one. The first match wins at every level.
func (d *Document) Find(path ...string) *Block {
	if d == nil || len(path) == 0 {
		return nil
	}
	var cur *Block
	for _, b := range d.Blocks {
		if b.Name == path[0] {
			cur = b
			break
		}
	}
	for _, name := range path[1:] {
		if cur == nil {
			return nil
		}
		cur = cur.Child(name)
	}
	return cur
}

// Equal reports whether two documents have the same structure. Source
// ranges are ignored.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	return slices.EqualFunc(d.Blocks, o.Blocks, (*Block).Equal)
}

// Get returns the value stored under key.
func (b *Block) Get(key string) (string, bool) {
	if b == nil {
		return "", false
	}
	v, ok := b.Expressions[key]
	return v, ok
}

// Child returns the first child block with the given name, or nil.
func (b *Block) Child(name string) *Block {
	if b == nil {
		return nil
	}
	for _, c := range b.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child block with the given name, in source
// order.
func (b *Block) ChildrenNamed(name string) []*Block {
	if b == nil {
		return nil
	}
	var out []*Block
	for _, c := range b.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Keys returns the expression keys of the block in sorted order.
func (b *Block) Keys() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.Expressions))
}

// Equal reports whether two blocks have the same name, mapping and
// children. Source ranges are ignored.
func (b *Block) Equal(o *Block) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.Name == o.Name &&
		maps.Equal(b.Expressions, o.Expressions) &&
		slices.EqualFunc(b.Children, o.Children, (*Block).Equal)
}
