package remap

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/viant/xunsafe"
)

// Synthesize builds a conversion routine between the supplied record
// pair, resolving nested conversions against the default registry.
func Synthesize(source, target *Record, overrides map[string]Origin) (*Routine, error) {
	return defaultRegistry.Synthesize(source, target, overrides)
}

// Synthesize builds a conversion routine between the supplied record
// pair. Every target field resolves to a strategy here: an explicit
// override origin when present, otherwise the same named source field
// run through the strategy table. All mapping failures surface from this
// call; a returned routine never fails on a well typed source value.
func (r *Registry) Synthesize(source, target *Record, overrides map[string]Origin) (*Routine, error) {
	if err := validateOverrides(target, overrides); err != nil {
		return nil, err
	}
	builder := &synthesis{registry: r, source: source, target: target}
	routine := &Routine{src: source, dst: target}
	for _, field := range target.Fields {
		if field.defaultFn != nil {
			routine.defaults = append(routine.defaults, &setDefaultStep{target: field, produce: field.defaultFn})
		}
		origin, ok := overrides[field.Name]
		if !ok {
			origin = FromField(field.Name)
		}
		item, err := builder.resolve(field, origin)
		if err != nil {
			return nil, err
		}
		if item != nil {
			routine.steps = append(routine.steps, item)
		}
	}
	return routine, nil
}

func validateOverrides(target *Record, overrides map[string]Origin) error {
	var unknown []string
	for key := range overrides {
		if target.Field(key) == nil {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%w: unknown override field '%v' of '%v'", ErrConfiguration, unknown[0], target.Name)
}

// synthesis carries the per-pair builder state; discarded once the
// routine is assembled.
type synthesis struct {
	registry *Registry
	source   *Record
	target   *Record
}

// resolve turns one target field origin into a compiled step; a nil step
// with nil error leaves the field unset so its default applies.
func (s *synthesis) resolve(target *Field, origin Origin) (step, error) {
	switch actual := origin.(type) {
	case *defaultOrigin:
		if target.Required && !target.HasDefault() {
			return nil, fmt.Errorf("%w: field '%v' of '%v' is required and has no default", ErrConfiguration, target.Name, s.target.Name)
		}
		return nil, nil
	case *funcOrigin:
		return s.producer(target, actual.fn)
	case *fieldOrigin:
		source := s.source.Field(actual.name)
		if source == nil {
			if !target.Required {
				return nil, nil
			}
			return nil, &UnmappableFieldError{Field: target.Name, Record: s.target.Name}
		}
		return s.decide(source, target)
	}
	return nil, fmt.Errorf("%w: unsupported origin %v of '%v'", ErrConfiguration, origin, target.Name)
}

// decide runs the strategy table over one field pair, first match wins.
// Beside type identity the table tracks two axes: can a null source
// value reach a non null target, and does the target supply a default
// when an assignment gets skipped.
func (s *synthesis) decide(source, target *Field) (step, error) {
	bothTrackSet := s.source.TracksSet() && s.target.TracksSet()
	setGuarded := bothTrackSet && target.AllowNone && !target.Required
	narrowing := source.AllowNone && !target.AllowNone

	if source.Type == target.Type {
		if !narrowing {
			ret := &assignStep{
				source:   source,
				target:   target,
				strategy: StrategyAssign,
				copy:     lookupCopier(source.xField, target.xField),
				guard:    setGuard{index: -1},
				marked:   markedFor(s.target, target),
			}
			if setGuarded {
				ret.strategy = StrategyAssignIfSet
				ret.guard = setGuard{marker: s.source.marker, index: source.markerIndex}
			}
			return ret, nil
		}
		if !target.Required {
			return &assignIfNotNilStep{
				source: source,
				target: target,
				isNil:  nilChecker(source.xField),
				copy:   lookupCopier(source.xField, target.xField),
				marked: markedFor(s.target, target),
			}, nil
		}
	}
	if nested := s.registry.Lookup(source.Type, target.Type); nested != nil && !narrowing {
		ret := &callStep{
			source:       source,
			target:       target,
			routine:      nested,
			guard:        setGuard{index: -1},
			nilPropagate: source.AllowNone && source.DeclaredType().Kind() == reflect.Ptr,
			srcPtrDecl:   source.DeclaredType().Kind() == reflect.Ptr,
			dstPtrDecl:   target.DeclaredType().Kind() == reflect.Ptr,
			nilValue:     reflect.Zero(target.DeclaredType()).Interface(),
			marked:       markedFor(s.target, target),
		}
		if setGuarded {
			ret.guard = setGuard{marker: s.source.marker, index: source.markerIndex}
		}
		return ret, nil
	}
	if source.isList() && target.isList() {
		if nested := s.registry.Lookup(source.elemType(), target.elemType()); nested != nil {
			if !narrowing || !target.Required {
				ret := s.listStep(source, target, nested)
				if narrowing {
					ret.strategy = StrategyRecurseListIfNotNil
					ret.notNilGuard = true
					ret.nilPropagate = false
				} else if setGuarded {
					ret.guard = setGuard{marker: s.source.marker, index: source.markerIndex}
				}
				return ret, nil
			}
		}
	}
	return nil, &ConversionError{Source: source.Name, SourceRecord: s.source.Name, Target: target.Name}
}

func (s *synthesis) listStep(source, target *Field, nested *Routine) *callListStep {
	return &callListStep{
		source:       source,
		target:       target,
		routine:      nested,
		strategy:     StrategyRecurseList,
		guard:        setGuard{index: -1},
		nilPropagate: source.AllowNone,
		isNil:        nilChecker(source.xField),
		srcPtrDecl:   source.DeclaredType().Kind() == reflect.Ptr,
		dstPtrDecl:   target.DeclaredType().Kind() == reflect.Ptr,
		srcElemPtr:   source.Type.Elem().Kind() == reflect.Ptr,
		dstElemPtr:   target.Type.Elem().Kind() == reflect.Ptr,
		srcSlice:     xunsafe.NewSlice(source.Type),
		dstSlice:     xunsafe.NewSlice(target.Type),
		dstListType:  target.Type,
		nilValue:     reflect.Zero(target.DeclaredType()).Interface(),
		marked:       markedFor(s.target, target),
	}
}

// producer classifies a function origin: func() T runs independent of
// the source, func(Source) T and func(*Source) T receive it. T has to be
// assignable to the target field type or its pointer element.
func (s *synthesis) producer(target *Field, fn interface{}) (step, error) {
	value := reflect.ValueOf(fn)
	if !value.IsValid() || value.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: origin of '%v' has to be a function, had: %T", ErrConfiguration, target.Name, fn)
	}
	fType := value.Type()
	if fType.NumOut() != 1 {
		return nil, fmt.Errorf("%w: origin of '%v' has to return one value, had: %s", ErrConfiguration, target.Name, fType.String())
	}
	ret := &produceStep{
		target:  target,
		fn:      value,
		fnType:  fType,
		srcType: s.source.Type,
		marked:  markedFor(s.target, target),
	}
	switch fType.NumIn() {
	case 0:
	case 1:
		in := fType.In(0)
		switch {
		case in == s.source.Type:
			ret.takesSource = true
		case in.Kind() == reflect.Ptr && in.Elem() == s.source.Type:
			ret.takesSource = true
			ret.takesPtr = true
		default:
			return nil, fmt.Errorf("%w: origin of '%v' has to accept %s, had: %s", ErrConfiguration, target.Name, s.source.Type.String(), fType.String())
		}
	default:
		return nil, fmt.Errorf("%w: origin of '%v' has to accept at most the source record, had: %s", ErrConfiguration, target.Name, fType.String())
	}
	declared := target.DeclaredType()
	produced := fType.Out(0)
	switch {
	case produced.AssignableTo(declared):
	case declared.Kind() == reflect.Ptr && produced.AssignableTo(declared.Elem()):
		ret.wrap = true
	default:
		return nil, fmt.Errorf("%w: origin of '%v' produces %s, expected %s", ErrConfiguration, target.Name, produced.String(), declared.String())
	}
	return ret, nil
}
