package remap

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/viant/remap/conv"
)

var recordCache sync.Map //map[reflect.Type]*Record

// DescribeType builds a record descriptor for the supplied struct value,
// struct pointer or reflect type. Base descriptors compile once per type
// and are cached; options apply to a private copy.
//
// Nullability follows pointer shape: *T fields allow none, value fields do
// not, with remap tag values optional and notnull overriding. A field is
// required unless nullable or defaulted; the remap tag values required and
// default adjust that. The setMarker tagged holder field turns the record
// into the explicit-set tracking kind.
func DescribeType(v interface{}, opts ...Option) (*Record, error) {
	rType, err := structType(v)
	if err != nil {
		return nil, err
	}
	base, err := describe(rType)
	if err != nil {
		return nil, err
	}
	if len(opts) == 0 {
		return base, nil
	}
	record := base.clone()
	if err = Options(opts).Apply(record); err != nil {
		return nil, err
	}
	return record, nil
}

func structType(v interface{}) (reflect.Type, error) {
	rType, ok := v.(reflect.Type)
	if !ok {
		rType = reflect.TypeOf(v)
	}
	if rType == nil {
		return nil, fmt.Errorf("supplied value was nil")
	}
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	if rType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("supplied type is not a struct: %s", rType.String())
	}
	return rType, nil
}

func describe(rType reflect.Type) (*Record, error) {
	if value, ok := recordCache.Load(rType); ok {
		return value.(*Record), nil
	}
	record, err := compileRecord(rType)
	if err != nil {
		return nil, err
	}
	recordCache.Store(rType, record)
	return record, nil
}

func compileRecord(rType reflect.Type) (*Record, error) {
	record := &Record{Name: rType.Name(), Type: rType, Kind: RecordGeneric, byName: map[string]*Field{}}
	if record.Name == "" {
		record.Name = rType.String()
	}
	hasMarker := false
	for i := 0; i < rType.NumField(); i++ {
		sf := rType.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		if IsSetMarker(sf.Tag) {
			hasMarker = true
			continue
		}
		tag, err := parseFieldTag(sf.Tag)
		if err != nil {
			return nil, fmt.Errorf("field '%v' of '%v': %w", sf.Name, record.Name, err)
		}
		if tag.Ignore {
			continue
		}
		field := newField(sf, tag)
		if tag.HasDefault {
			value, err := conv.Parse(tag.Default, sf.Type)
			if err != nil {
				return nil, fmt.Errorf("invalid default of field '%v' of '%v': %w", sf.Name, record.Name, err)
			}
			field.defaultFn = literalDefault(reflect.ValueOf(value))
		}
		if prev := record.byName[field.Name]; prev != nil {
			return nil, fmt.Errorf("%w: duplicate mapping name '%v' of '%v'", ErrConfiguration, field.Name, record.Name)
		}
		record.Fields = append(record.Fields, field)
		record.byName[field.Name] = field
	}
	if hasMarker {
		marker, err := NewMarker(rType)
		if err != nil {
			return nil, err
		}
		record.Kind = RecordTracksSet
		record.marker = marker
		for _, field := range record.Fields {
			field.markerIndex = marker.Index(field.goName)
		}
	}
	return record, nil
}

// literalDefault wraps a parsed default so every conversion receives a
// value not aliased with previous ones.
func literalDefault(value reflect.Value) func() interface{} {
	switch value.Kind() {
	case reflect.Ptr:
		elem := value.Type().Elem()
		return func() interface{} {
			ret := reflect.New(elem)
			ret.Elem().Set(value.Elem())
			return ret.Interface()
		}
	case reflect.Slice:
		sliceType := value.Type()
		return func() interface{} {
			ret := reflect.MakeSlice(sliceType, value.Len(), value.Len())
			reflect.Copy(ret, value)
			return ret.Interface()
		}
	default:
		iface := value.Interface()
		return func() interface{} {
			return iface
		}
	}
}
