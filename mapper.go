package remap

import (
	"fmt"
	"reflect"
)

// MappingOption customises one Map call.
type MappingOption func(m *mappingOptions)

type mappingOptions struct {
	registry      *Registry
	overrides     map[string]Origin
	sourceOptions []Option
	targetOptions []Option
}

// WithOverride maps the target field from the supplied origin instead of
// the same named source field.
func WithOverride(target string, origin Origin) MappingOption {
	return func(m *mappingOptions) {
		m.overrides[target] = origin
	}
}

// WithRegistry synthesizes against the supplied registry instead of the
// package default.
func WithRegistry(registry *Registry) MappingOption {
	return func(m *mappingOptions) {
		m.registry = registry
	}
}

// WithRecordName overrides the diagnostic names of the source and target
// records; empty string keeps the described name.
func WithRecordName(source, target string) MappingOption {
	return func(m *mappingOptions) {
		if source != "" {
			m.sourceOptions = append(m.sourceOptions, WithName(source))
		}
		if target != "" {
			m.targetOptions = append(m.targetOptions, WithName(target))
		}
	}
}

// WithDefaultFactory registers a default factory for the target field,
// shaped func() T, making the field non required.
func WithDefaultFactory(field string, factory interface{}) MappingOption {
	return func(m *mappingOptions) {
		m.targetOptions = append(m.targetOptions, WithDefault(field, factory))
	}
}

func newMappingOptions(opts []MappingOption) *mappingOptions {
	ret := &mappingOptions{registry: defaultRegistry, overrides: map[string]Origin{}}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Map describes both struct types, synthesizes a conversion routine
// between them and registers it, making the pair available to nested
// conversions of subsequent Map calls.
func Map(source, target interface{}, opts ...MappingOption) (*Routine, error) {
	options := newMappingOptions(opts)
	src, err := DescribeType(source, options.sourceOptions...)
	if err != nil {
		return nil, err
	}
	dst, err := DescribeType(target, options.targetOptions...)
	if err != nil {
		return nil, err
	}
	routine, err := options.registry.Synthesize(src, dst, options.overrides)
	if err != nil {
		return nil, err
	}
	options.registry.Register(routine)
	return routine, nil
}

// MustMap is Map panicking on error, for package init registration.
func MustMap(source, target interface{}, opts ...MappingOption) *Routine {
	routine, err := Map(source, target, opts...)
	if err != nil {
		panic(err)
	}
	return routine
}

// MapTo converts source into the supplied target pointer using the
// routine registered for the pair in the default registry.
func MapTo(source, target interface{}) error {
	routine := defaultRegistry.Lookup(structTypeOf(source), structTypeOf(target))
	if routine == nil {
		return fmt.Errorf("no routine registered for %T to %T", source, target)
	}
	return routine.ConvertInto(source, target)
}

func structTypeOf(v interface{}) reflect.Type {
	rType := reflect.TypeOf(v)
	if rType != nil && rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return rType
}
