package remap

import (
	"reflect"

	"github.com/viant/xunsafe"
)

// Field describes one mappable field of a record: the mapping name, the
// value type with the nullability wrapper stripped, and the two axes the
// strategy table tracks beside type identity.
type Field struct {
	Name      string
	Type      reflect.Type
	AllowNone bool
	Required  bool

	goName      string
	xField      *xunsafe.Field
	markerIndex int
	defaultFn   func() interface{}
}

// DeclaredType returns the field type as declared on the struct.
func (f *Field) DeclaredType() reflect.Type {
	return f.xField.Type
}

// HasDefault returns true if the field carries a default literal or factory.
func (f *Field) HasDefault() bool {
	return f.defaultFn != nil
}

func (f *Field) isList() bool {
	return f.Type.Kind() == reflect.Slice
}

// elemType returns the de-nulled element type for list fields.
func (f *Field) elemType() reflect.Type {
	if !f.isList() {
		return nil
	}
	return deNulled(f.Type.Elem())
}

func (f *Field) clone() *Field {
	ret := *f
	return &ret
}

func newField(sf reflect.StructField, tag *fieldTag) *Field {
	ret := &Field{
		Name:        sf.Name,
		goName:      sf.Name,
		Type:        deNulled(sf.Type),
		AllowNone:   sf.Type.Kind() == reflect.Ptr,
		xField:      xunsafe.NewField(sf),
		markerIndex: -1,
	}
	if tag.Name != "" {
		ret.Name = tag.Name
	}
	if tag.AllowNone != nil {
		ret.AllowNone = *tag.AllowNone
	}
	ret.Required = !ret.AllowNone
	if tag.HasDefault {
		ret.Required = false
	}
	if tag.Required != nil {
		ret.Required = *tag.Required
	}
	return ret
}
