package acf

import "github.com/KimNorgaard/go-acf/internal/mapper"

// Unmarshal parses src and stores the root block in the value pointed to
// by v. See Decode for the mapping rules. An empty document leaves v
// untouched.
func Unmarshal(src []byte, v any, opts ...Option) error {
	doc, err := Parse(src, opts...)
	if err = FatalOnly(err); err != nil {
		return err
	}
	return Decode(doc.Root(), v)
}

// Decode stores the block in the value pointed to by v.
//
// A struct receives each key/value pair in the field whose `acf` tag, or
// failing that whose name, matches the key; an exact match is preferred
// over a case-insensitive one. Values are converted to the field type:
// strings, signed and unsigned integers, floats and booleans ("1"/"0" and
// "true"/"false") are supported. Child blocks go to struct, pointer, map
// or slice fields matching the child's name; slices collect every child
// of that name.
//
// Two tag options are recognized: `acf:",name"` stores the block's own
// name and `acf:",expressions"` stores every pair in a map[string]string.
// A field tagged "acf:-" is skipped.
//
// A map[string]string receives the block's pairs; a map with struct
// values receives its child blocks keyed by name. An empty interface
// receives the *Block itself.
func Decode(b *Block, v any) error {
	return mapper.Map(b, v)
}
