package remap

import (
	"reflect"
)

// ensureStruct returns the underlying struct type or nil.
func ensureStruct(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Struct:
		return t
	case reflect.Ptr, reflect.Slice:
		return ensureStruct(t.Elem())
	}
	return nil
}

// deNulled strips the pointer wrapper carrying nullability; the result is
// the value type the strategy table compares.
func deNulled(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}
