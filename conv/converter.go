package conv

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/viant/remap/tags"
)

// DefaultDateLayout is the default layout used for time parsing when no layout is specified
const DefaultDateLayout = "2006-01-02 15:04:05.000"

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// Options contains configuration for the converter
type Options struct {
	// DateLayout specifies the layout for time parsing
	DateLayout string
}

// DefaultOptions returns default parse options
func DefaultOptions() Options {
	return Options{DateLayout: DefaultDateLayout}
}

// ParseFunc defines a custom literal parser for a destination type
type ParseFunc func(literal string, options Options) (interface{}, error)

// Converter parses default literals into typed values
type Converter struct {
	options        Options
	customParseMap sync.Map //map[reflect.Type]ParseFunc
}

// NewConverter creates a new literal converter with the provided options
func NewConverter(options Options) *Converter {
	if options.DateLayout == "" {
		options.DateLayout = DefaultDateLayout
	}
	return &Converter{options: options}
}

// RegisterParser registers a custom parser for the destination type
func (c *Converter) RegisterParser(destType reflect.Type, fn ParseFunc) {
	c.customParseMap.Store(destType, fn)
}

// Parse converts the literal to a destType value
func (c *Converter) Parse(literal string, destType reflect.Type) (interface{}, error) {
	if fn, ok := c.customParseMap.Load(destType); ok {
		return fn.(ParseFunc)(literal, c.options)
	}
	switch destType.Kind() {
	case reflect.Ptr:
		elem, err := c.Parse(literal, destType.Elem())
		if err != nil {
			return nil, err
		}
		value := reflect.New(destType.Elem())
		value.Elem().Set(reflect.ValueOf(elem))
		return value.Interface(), nil
	case reflect.String:
		value := reflect.New(destType).Elem()
		value.SetString(literal)
		return value.Interface(), nil
	case reflect.Bool:
		parsed, err := strconv.ParseBool(literal)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as bool: %w", literal, err)
		}
		value := reflect.New(destType).Elem()
		value.SetBool(parsed)
		return value.Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if destType == durationType {
			parsed, err := time.ParseDuration(literal)
			if err != nil {
				return nil, fmt.Errorf("cannot parse %q as duration: %w", literal, err)
			}
			return parsed, nil
		}
		parsed, err := c.parseInt(literal)
		if err != nil {
			return nil, err
		}
		value := reflect.New(destType).Elem()
		value.SetInt(parsed)
		return value.Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseUint(literal, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as uint: %w", literal, err)
		}
		value := reflect.New(destType).Elem()
		value.SetUint(parsed)
		return value.Interface(), nil
	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as float: %w", literal, err)
		}
		value := reflect.New(destType).Elem()
		value.SetFloat(parsed)
		return value.Interface(), nil
	case reflect.Slice:
		return c.parseSlice(literal, destType)
	case reflect.Struct:
		if destType == timeType {
			return c.parseTime(literal)
		}
	}
	return nil, fmt.Errorf("unsupported default literal target: %s", destType.String())
}

func (c *Converter) parseInt(literal string) (int64, error) {
	if strings.Contains(literal, ".") {
		parsed, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as int: %w", literal, err)
		}
		return int64(parsed), nil
	}
	parsed, err := strconv.ParseInt(literal, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as int: %w", literal, err)
	}
	return parsed, nil
}

func (c *Converter) parseSlice(literal string, destType reflect.Type) (interface{}, error) {
	if destType.Elem().Kind() == reflect.Uint8 {
		value := reflect.New(destType).Elem()
		value.SetBytes([]byte(literal))
		return value.Interface(), nil
	}
	result := reflect.MakeSlice(destType, 0, 4)
	err := tags.Values(literal).MatchElements(func(element string) error {
		item, err := c.Parse(element, destType.Elem())
		if err != nil {
			return err
		}
		result = reflect.Append(result, reflect.ValueOf(item))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result.Interface(), nil
}

func (c *Converter) parseTime(literal string) (interface{}, error) {
	for _, layout := range []string{c.options.DateLayout, time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, literal); err == nil {
			return parsed, nil
		}
	}
	return nil, fmt.Errorf("cannot parse %q as time with layout %v", literal, c.options.DateLayout)
}

var defaultConverter = NewConverter(DefaultOptions())

// Parse converts the literal to a destType value with default options
func Parse(literal string, destType reflect.Type) (interface{}, error) {
	return defaultConverter.Parse(literal, destType)
}
