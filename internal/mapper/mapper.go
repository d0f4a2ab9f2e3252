package mapper

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/KimNorgaard/go-acf/internal/ast"
)

// Map populates the Go value pointed to by v from the block.
//
// Structs receive expressions in fields whose name or `acf` tag matches a
// key, and child blocks in struct, pointer, slice or map fields matching
// the child's name. A map[string]string receives the block's expressions;
// a map with struct values receives the child blocks keyed by name.
func Map(b *ast.Block, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("acf: Decode(non-pointer %T or nil)", v)
	}
	if b == nil {
		return nil
	}

	m := &mapper{}
	return m.mapBlock(b, rv.Elem())
}

type mapper struct{}

func (m *mapper) mapBlock(b *ast.Block, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return m.mapBlock(b, rv.Elem())
	case reflect.Struct:
		return m.mapStruct(b, rv)
	case reflect.Map:
		return m.mapMap(b, rv)
	case reflect.Interface:
		if rv.NumMethod() == 0 {
			rv.Set(reflect.ValueOf(b))
			return nil
		}
	}
	return fmt.Errorf("acf: cannot decode block %q into Go value of type %s", b.Name, rv.Type())
}

func (m *mapper) mapStruct(b *ast.Block, rv reflect.Value) error {
	fields := cachedFields(rv.Type())

	for _, f := range fields.list {
		switch {
		case f.blockName:
			target := rv.FieldByIndex(f.idx)
			if err := m.mapScalar(b.Name, target); err != nil {
				return fmt.Errorf("acf: block name %q: %w", b.Name, err)
			}
		case f.allPairs:
			if err := m.mapExpressions(b, rv.FieldByIndex(f.idx)); err != nil {
				return err
			}
		}
	}

	for key, val := range b.Expressions {
		f, ok := fields.lookup(key)
		if !ok {
			continue
		}
		target := rv.FieldByIndex(f.idx)
		if !isScalar(target.Type()) {
			continue
		}
		if err := m.mapScalar(val, target); err != nil {
			return fmt.Errorf("acf: key %q in block %q: %w", key, b.Name, err)
		}
	}

	// Slices are replaced, not appended to, so decoding into a reused
	// value does not repeat children.
	reset := make(map[int]bool)
	for _, child := range b.Children {
		f, ok := fields.lookup(child.Name)
		if !ok {
			continue
		}
		target := rv.FieldByIndex(f.idx)
		if isScalar(target.Type()) {
			continue
		}
		if target.Kind() == reflect.Slice {
			if !reset[f.idx[0]] {
				target.SetLen(0)
				reset[f.idx[0]] = true
			}
			elem := reflect.New(target.Type().Elem()).Elem()
			if err := m.mapBlock(child, elem); err != nil {
				return err
			}
			target.Set(reflect.Append(target, elem))
			continue
		}
		if err := m.mapBlock(child, target); err != nil {
			return err
		}
	}

	return nil
}

func (m *mapper) mapMap(b *ast.Block, rv reflect.Value) error {
	mapType := rv.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("acf: cannot decode block %q into map with non-string key type %s", b.Name, mapType.Key())
	}
	if isScalar(mapType.Elem()) {
		return m.mapExpressions(b, rv)
	}

	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	}
	for _, child := range b.Children {
		elem := reflect.New(mapType.Elem()).Elem()
		if err := m.mapBlock(child, elem); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(child.Name).Convert(mapType.Key()), elem)
	}
	return nil
}

func (m *mapper) mapExpressions(b *ast.Block, rv reflect.Value) error {
	mapType := rv.Type()
	if rv.Kind() != reflect.Map || mapType.Key().Kind() != reflect.String || !isScalar(mapType.Elem()) {
		return fmt.Errorf("acf: cannot decode expressions of block %q into Go value of type %s", b.Name, mapType)
	}

	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	}
	for key, val := range b.Expressions {
		elem := reflect.New(mapType.Elem()).Elem()
		if err := m.mapScalar(val, elem); err != nil {
			return fmt.Errorf("acf: key %q in block %q: %w", key, b.Name, err)
		}
		rv.SetMapIndex(reflect.ValueOf(key).Convert(mapType.Key()), elem)
	}
	return nil
}

// mapScalar converts a literal into a scalar Go value.
func (m *mapper) mapScalar(s string, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot decode %q into Go value of type %s", s, rv.Type())
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot decode %q into Go value of type %s", s, rv.Type())
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot decode %q into Go value of type %s", s, rv.Type())
		}
		rv.SetFloat(n)
	case reflect.Bool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("cannot decode %q into Go value of type %s", s, rv.Type())
		}
		rv.SetBool(v)
	default:
		return fmt.Errorf("cannot decode string into Go value of type %s", rv.Type())
	}
	return nil
}

func isScalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
