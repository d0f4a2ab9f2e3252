package marshaler

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-acf/internal/ast"
)

// Marshal converts a Go value into a block called name.
//
// v must be a struct, a map with string keys, or a pointer to either.
// Scalar fields become key/value pairs; struct, map and slice fields
// become child blocks.
func Marshal(name string, v any) (*ast.Block, error) {
	m := &marshaler{}
	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return nil, fmt.Errorf("acf: cannot marshal nil value into block %q", name)
	}
	return m.marshalBlock(name, rv)
}

type marshaler struct{}

// parseTag splits an acf struct tag into its name and options.
func parseTag(tag string) (string, map[string]bool) {
	parts := strings.Split(tag, ",")
	name := parts[0]
	options := make(map[string]bool)
	for _, part := range parts[1:] {
		options[strings.TrimSpace(part)] = true
	}
	return name, options
}

// isEmptyValue reports whether the value v is empty.
// It is equivalent to the `encoding/json` definition of empty:
// false, 0, a nil pointer, a nil interface value, and any empty array,
// slice, map, or string.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

// indirect follows pointers and interfaces. It reports false for nil.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

var blockType = reflect.TypeFor[ast.Block]()

func (m *marshaler) marshalBlock(name string, v reflect.Value) (*ast.Block, error) {
	if v.Type() == blockType {
		b := v.Interface().(ast.Block)
		return &ast.Block{Name: name, Expressions: maps.Clone(b.Expressions), Children: b.Children}, nil
	}

	b := &ast.Block{Name: name, Expressions: make(map[string]string)}
	switch v.Kind() {
	case reflect.Struct:
		if err := m.marshalStruct(b, v); err != nil {
			return nil, err
		}
	case reflect.Map:
		if err := m.marshalMap(b, v); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("acf: cannot marshal Go value of type %s into block %q", v.Type(), name)
	}
	return b, nil
}

func (m *marshaler) marshalStruct(b *ast.Block, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		// Skip unexported and embedded fields
		if !field.IsExported() || field.Anonymous {
			continue
		}

		tagName, opts := parseTag(field.Tag.Get("acf"))
		if tagName == "-" {
			continue
		}
		if opts["omitempty"] && isEmptyValue(fieldValue) {
			continue
		}

		switch {
		case opts["name"]:
			if fieldValue.Kind() == reflect.String && fieldValue.String() != "" {
				b.Name = fieldValue.String()
			}
			continue
		case opts["expressions"]:
			if err := m.marshalPairs(b, fieldValue); err != nil {
				return err
			}
			continue
		}

		key := field.Name
		if tagName != "" {
			key = tagName
		}
		if err := m.marshalField(b, key, fieldValue); err != nil {
			return err
		}
	}
	return nil
}

// marshalField stores one named value: scalars as pairs, everything else
// as child blocks. Nil values are skipped.
func (m *marshaler) marshalField(b *ast.Block, key string, v reflect.Value) error {
	v, ok := indirect(v)
	if !ok {
		return nil
	}

	if s, ok, err := formatScalar(v); ok {
		if err != nil {
			return fmt.Errorf("acf: key %q in block %q: %w", key, b.Name, err)
		}
		b.Expressions[key] = s
		return nil
	}

	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		for i := 0; i < v.Len(); i++ {
			elem, ok := indirect(v.Index(i))
			if !ok {
				continue
			}
			child, err := m.marshalBlock(key, elem)
			if err != nil {
				return err
			}
			b.Children = append(b.Children, child)
		}
		return nil
	}

	child, err := m.marshalBlock(key, v)
	if err != nil {
		return err
	}
	b.Children = append(b.Children, child)
	return nil
}

// marshalMap stores a map's entries in sorted key order so the output is
// deterministic.
func (m *marshaler) marshalMap(b *ast.Block, v reflect.Value) error {
	if v.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("acf: map key type must be a string, got %s", v.Type().Key())
	}
	keys := make(map[string]reflect.Value, v.Len())
	for _, k := range v.MapKeys() {
		keys[k.String()] = v.MapIndex(k)
	}
	for _, k := range slices.Sorted(maps.Keys(keys)) {
		if err := m.marshalField(b, k, keys[k]); err != nil {
			return err
		}
	}
	return nil
}

// marshalPairs merges a map of scalars into the block's pairs.
func (m *marshaler) marshalPairs(b *ast.Block, v reflect.Value) error {
	v, ok := indirect(v)
	if !ok {
		return nil
	}
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("acf: cannot marshal expressions of block %q from Go value of type %s", b.Name, v.Type())
	}
	for _, k := range v.MapKeys() {
		s, ok, err := formatScalar(v.MapIndex(k))
		if !ok {
			return fmt.Errorf("acf: cannot marshal expressions of block %q from Go value of type %s", b.Name, v.Type())
		}
		if err != nil {
			return fmt.Errorf("acf: key %q in block %q: %w", k.String(), b.Name, err)
		}
		b.Expressions[k.String()] = s
	}
	return nil
}

// formatScalar renders a scalar as a literal. Booleans are written as
// "1" and "0". ok is false for non-scalar kinds.
func formatScalar(v reflect.Value) (s string, ok bool, err error) {
	switch v.Kind() {
	case reflect.String:
		s = v.String()
	case reflect.Bool:
		s = "0"
		if v.Bool() {
			s = "1"
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s = strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		s = strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		s = strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits())
	default:
		return "", false, nil
	}
	if strings.ContainsRune(s, '"') {
		return "", true, fmt.Errorf("literals cannot contain a double quote")
	}
	return s, true, nil
}
