package ast

import (
	"github.com/zclconf/go-cty/cty"
)

// Value returns the document as a cty tuple of block objects.
func (d *Document) Value() cty.Value {
	if d == nil || len(d.Blocks) == 0 {
		return cty.EmptyTupleVal
	}
	vals := make([]cty.Value, len(d.Blocks))
	for i, b := range d.Blocks {
		vals[i] = b.Value()
	}
	return cty.TupleVal(vals)
}

// Value returns the block as a cty object with the attributes
// "name" (string), "expressions" (map of string) and "children" (tuple of
// block objects).
func (b *Block) Value() cty.Value {
	if b == nil {
		return cty.NullVal(cty.DynamicPseudoType)
	}

	exprs := cty.MapValEmpty(cty.String)
	if len(b.Expressions) > 0 {
		m := make(map[string]cty.Value, len(b.Expressions))
		for k, v := range b.Expressions {
			m[k] = cty.StringVal(v)
		}
		exprs = cty.MapVal(m)
	}

	children := cty.EmptyTupleVal
	if len(b.Children) > 0 {
		vals := make([]cty.Value, len(b.Children))
		for i, c := range b.Children {
			vals[i] = c.Value()
		}
		children = cty.TupleVal(vals)
	}

	return cty.ObjectVal(map[string]cty.Value{
		"name":        cty.StringVal(b.Name),
		"expressions": exprs,
		"children":    children,
	})
}
