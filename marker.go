package remap

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

//Marker exposes which record fields were explicitly set, backed by a
//holder struct flagged with the setMarker tag
type Marker struct {
	t      reflect.Type
	holder *xunsafe.Field
	fields []*xunsafe.Field //flag fields aligned to owner field declaration index
	index  map[string]int
}

//Index returns mapped field index or -1
func (m *Marker) Index(name string) int {
	pos, ok := m.index[name]
	if !ok {
		return -1
	}
	return pos
}

//IsSet returns true if field has been set; with no usable holder all
//fields count as set
func (m *Marker) IsSet(ptr unsafe.Pointer, index int) bool {
	if !m.canUseHolder(ptr) {
		return true
	}
	markerPtr := m.holderPointer(ptr)
	if index < 0 || index >= len(m.fields) || m.fields[index] == nil {
		return false
	}
	return m.fields[index].Bool(markerPtr)
}

//Set sets field marker flag
func (m *Marker) Set(ptr unsafe.Pointer, index int, flag bool) error {
	if !m.canUseHolder(ptr) {
		return fmt.Errorf("marker holder was empty at %s", m.t.String())
	}
	if index < 0 || index >= len(m.fields) || m.fields[index] == nil {
		return fmt.Errorf("field at index %v was missing in set marker", index)
	}
	m.fields[index].SetBool(m.holderPointer(ptr), flag)
	return nil
}

//SetAll sets all marker flags with supplied value
func (m *Marker) SetAll(ptr unsafe.Pointer, flag bool) error {
	if !m.canUseHolder(ptr) {
		return fmt.Errorf("marker holder was empty at %s", m.t.String())
	}
	markerPtr := m.holderPointer(ptr)
	for _, field := range m.fields {
		if field == nil {
			continue
		}
		field.SetBool(markerPtr, flag)
	}
	return nil
}

//EnsureHolder allocates the holder when it is a nil pointer
func (m *Marker) EnsureHolder(ptr unsafe.Pointer) {
	if m.holder == nil || m.holder.Type.Kind() != reflect.Ptr {
		return
	}
	if !m.holder.IsNil(ptr) {
		return
	}
	m.holder.SetValue(ptr, reflect.New(m.holder.Type.Elem()).Interface())
}

func (m *Marker) canUseHolder(ptr unsafe.Pointer) bool {
	if m.holder == nil {
		return false
	}
	if m.holder.Type.Kind() == reflect.Ptr && m.holder.IsNil(ptr) {
		return false
	}
	return true
}

func (m *Marker) holderPointer(ptr unsafe.Pointer) unsafe.Pointer {
	if m.holder.Type.Kind() == reflect.Ptr {
		return m.holder.ValuePointer(ptr)
	}
	return m.holder.Pointer(ptr)
}

func (m *Marker) init() error {
	if m.holder == nil {
		return fmt.Errorf("set marker holder was missing for %s", m.t.String())
	}
	if len(m.index) == 0 {
		return fmt.Errorf("struct %s has no markable fields", m.t.String())
	}
	holderType := ensureStruct(m.holder.Type)
	if holderType == nil {
		return fmt.Errorf("set marker holder of %s has to be a struct", m.t.String())
	}
	m.fields = make([]*xunsafe.Field, m.t.NumField())
	for i := 0; i < holderType.NumField(); i++ {
		flagField := holderType.Field(i)
		pos, ok := m.index[flagField.Name]
		if !ok {
			return fmt.Errorf("marker field: '%v' does not have corresponding struct field", flagField.Name)
		}
		if flagField.Type.Kind() != reflect.Bool {
			return fmt.Errorf("marker field: '%v' has to be bool", flagField.Name)
		}
		m.fields[pos] = xunsafe.NewField(flagField)
	}
	return nil
}

//GenMarkerFields generates bool flag fields mirroring the markable
//fields of t, for assembling holder types at runtime
func GenMarkerFields(t reflect.Type) []reflect.StructField {
	var result []reflect.StructField
	if t = ensureStruct(t); t == nil {
		return result
	}
	flagType := reflect.TypeOf(true)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if IsSetMarker(field.Tag) {
			continue
		}
		result = append(result, reflect.StructField{Name: field.Name, Type: flagType})
	}
	return result
}

//NewMarker returns a field set marker for supplied struct type
func NewMarker(t reflect.Type) (*Marker, error) {
	if t = ensureStruct(t); t == nil {
		return nil, fmt.Errorf("supplied type is not struct")
	}
	result := &Marker{t: t, index: make(map[string]int, t.NumField())}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if IsSetMarker(field.Tag) {
			result.holder = xunsafe.NewField(field)
			continue
		}
		result.index[field.Name] = i
	}
	return result, result.init()
}
