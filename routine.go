package remap

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

// Routine is a synthesized conversion between one record pair: an
// immutable sequence of compiled per-field steps, built once by
// Synthesize and reused for every conversion. Safe for concurrent use.
type Routine struct {
	src      *Record
	dst      *Record
	defaults []step
	steps    []step
}

// Source returns the source record descriptor.
func (r *Routine) Source() *Record {
	return r.src
}

// Target returns the target record descriptor.
func (r *Routine) Target() *Record {
	return r.dst
}

// Convert maps the supplied source value or pointer into a freshly
// allocated target instance, returned as a pointer to the target type.
func (r *Routine) Convert(source interface{}) (interface{}, error) {
	srcPtr, err := r.sourcePointer(source)
	if err != nil {
		return nil, err
	}
	value := reflect.New(r.dst.Type)
	r.run(srcPtr, unsafe.Pointer(value.Pointer()))
	return value.Interface(), nil
}

// ConvertInto maps the supplied source into an existing target instance;
// target has to be a pointer to the target record type.
func (r *Routine) ConvertInto(source, target interface{}) error {
	srcPtr, err := r.sourcePointer(source)
	if err != nil {
		return err
	}
	targetType := reflect.TypeOf(target)
	if targetType == nil || targetType.Kind() != reflect.Ptr || targetType.Elem() != r.dst.Type {
		return fmt.Errorf("invalid conversion target: expected %s, had %T", reflect.PtrTo(r.dst.Type).String(), target)
	}
	r.run(srcPtr, xunsafe.AsPointer(target))
	return nil
}

func (r *Routine) sourcePointer(source interface{}) (unsafe.Pointer, error) {
	sourceType := reflect.TypeOf(source)
	if sourceType != nil && sourceType.Kind() == reflect.Ptr {
		sourceType = sourceType.Elem()
	}
	if sourceType != r.src.Type {
		return nil, fmt.Errorf("invalid conversion source: expected %s, had %T", r.src.Type.String(), source)
	}
	return xunsafe.AsPointer(source), nil
}

// run executes the compiled plan over raw struct pointers; nested
// routines reenter here per record value.
func (r *Routine) run(srcPtr, dstPtr unsafe.Pointer) {
	if r.dst.marker != nil {
		r.dst.marker.EnsureHolder(dstPtr)
	}
	for _, item := range r.defaults {
		item.exec(srcPtr, dstPtr)
	}
	for _, item := range r.steps {
		item.exec(srcPtr, dstPtr)
	}
}

// Plan describes the synthesized strategy per target field.
func (r *Routine) Plan() *Plan {
	ret := &Plan{Source: r.src.Name, Target: r.dst.Name}
	for _, item := range r.defaults {
		ret.Steps = append(ret.Steps, item.plan())
	}
	for _, item := range r.steps {
		ret.Steps = append(ret.Steps, item.plan())
	}
	return ret
}
