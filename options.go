package remap

import (
	"fmt"
	"reflect"
)

//Option customises a described record
type Option func(r *Record) error

//Options represents record options
type Options []Option

//Apply applies options
func (o Options) Apply(r *Record) error {
	for _, opt := range o {
		if err := opt(r); err != nil {
			return err
		}
	}
	return nil
}

//WithName overrides the record diagnostic name
func WithName(name string) Option {
	return func(r *Record) error {
		r.Name = name
		return nil
	}
}

//WithDefault sets a default factory, shaped func() T with T assignable to
//the field type, making the field non required
func WithDefault(field string, factory interface{}) Option {
	return func(r *Record) error {
		target := r.Field(field)
		if target == nil {
			return fmt.Errorf("%w: unknown field '%v' of '%v'", ErrConfiguration, field, r.Name)
		}
		fn, err := defaultFactory(factory, target)
		if err != nil {
			return err
		}
		target.defaultFn = fn
		target.Required = false
		return nil
	}
}

func defaultFactory(factory interface{}, target *Field) (func() interface{}, error) {
	fn := reflect.ValueOf(factory)
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: default factory of '%v' has to be a function, had: %T", ErrConfiguration, target.Name, factory)
	}
	fType := fn.Type()
	if fType.NumIn() != 0 || fType.NumOut() != 1 {
		return nil, fmt.Errorf("%w: default factory of '%v' has to be shaped func() T, had: %s", ErrConfiguration, target.Name, fType.String())
	}
	declared := target.DeclaredType()
	produced := fType.Out(0)
	switch {
	case produced.AssignableTo(declared):
		return func() interface{} {
			return fn.Call(nil)[0].Interface()
		}, nil
	case declared.Kind() == reflect.Ptr && produced.AssignableTo(declared.Elem()):
		elem := declared.Elem()
		return func() interface{} {
			value := reflect.New(elem)
			value.Elem().Set(fn.Call(nil)[0])
			return value.Interface()
		}, nil
	}
	return nil, fmt.Errorf("%w: default factory of '%v' produces %s, expected %s", ErrConfiguration, target.Name, produced.String(), declared.String())
}
