package mapper

import (
	"reflect"
	"strings"
	"sync"
)

// field represents a cached struct field.
type field struct {
	name string
	idx  []int

	// blockName marks a field tagged `acf:",name"` that receives the name
	// of the block itself. allPairs marks `acf:",expressions"`, which
	// receives the whole key/value mapping.
	blockName bool
	allPairs  bool
}

type structFields struct {
	list   []field
	byName map[string]int
}

// lookup finds the field for a key or block name, preferring an exact
// match and falling back to a case-insensitive one.
func (s *structFields) lookup(name string) (field, bool) {
	if i, ok := s.byName[name]; ok {
		return s.list[i], true
	}
	for _, f := range s.list {
		if f.blockName || f.allPairs {
			continue
		}
		if strings.EqualFold(f.name, name) {
			return f, true
		}
	}
	return field{}, false
}

// fieldCache caches the parsed fields of each struct type.
var fieldCache sync.Map

// cachedFields parses a struct's `acf` tags once per type.
// It skips unexported fields, embedded fields and fields tagged "acf:-".
func cachedFields(t reflect.Type) *structFields {
	if f, ok := fieldCache.Load(t); ok {
		return f.(*structFields)
	}

	fields := &structFields{byName: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get("acf")
		if tag == "-" {
			continue
		}

		f := field{idx: sf.Index}
		name, opts, _ := strings.Cut(tag, ",")
		if name != "" {
			f.name = name
		} else {
			f.name = sf.Name
		}

		for opts != "" {
			var opt string
			opt, opts, _ = strings.Cut(opts, ",")
			switch opt {
			case "name":
				f.blockName = true
			case "expressions":
				f.allPairs = true
			}
		}

		fields.list = append(fields.list, f)
		if !f.blockName && !f.allPairs {
			fields.byName[f.name] = len(fields.list) - 1
		}
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.(*structFields)
}
