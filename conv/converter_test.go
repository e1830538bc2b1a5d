package conv

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConverter_Parse(t *testing.T) {

	var testCases = []struct {
		description string
		literal     string
		destType    reflect.Type
		expect      interface{}
		expectError bool
	}{
		{
			description: "string literal",
			literal:     "abc",
			destType:    reflect.TypeOf(""),
			expect:      "abc",
		},
		{
			description: "int literal",
			literal:     "42",
			destType:    reflect.TypeOf(0),
			expect:      42,
		},
		{
			description: "hex int literal",
			literal:     "0x10",
			destType:    reflect.TypeOf(0),
			expect:      16,
		},
		{
			description: "float literal into int",
			literal:     "3.9",
			destType:    reflect.TypeOf(0),
			expect:      3,
		},
		{
			description: "uint literal",
			literal:     "7",
			destType:    reflect.TypeOf(uint32(0)),
			expect:      uint32(7),
		},
		{
			description: "bool literal",
			literal:     "true",
			destType:    reflect.TypeOf(false),
			expect:      true,
		},
		{
			description: "float literal",
			literal:     "1.25",
			destType:    reflect.TypeOf(0.0),
			expect:      1.25,
		},
		{
			description: "float32 literal",
			literal:     "0.5",
			destType:    reflect.TypeOf(float32(0)),
			expect:      float32(0.5),
		},
		{
			description: "duration literal",
			literal:     "1h30m",
			destType:    reflect.TypeOf(time.Duration(0)),
			expect:      90 * time.Minute,
		},
		{
			description: "bytes literal",
			literal:     "raw",
			destType:    reflect.TypeOf([]byte{}),
			expect:      []byte("raw"),
		},
		{
			description: "int slice literal",
			literal:     "1,2,3",
			destType:    reflect.TypeOf([]int{}),
			expect:      []int{1, 2, 3},
		},
		{
			description: "string slice literal with quoted coma",
			literal:     "'a,b',c",
			destType:    reflect.TypeOf([]string{}),
			expect:      []string{"a,b", "c"},
		},
		{
			description: "invalid int literal",
			literal:     "abc",
			destType:    reflect.TypeOf(0),
			expectError: true,
		},
		{
			description: "invalid bool literal",
			literal:     "maybe",
			destType:    reflect.TypeOf(false),
			expectError: true,
		},
		{
			description: "unsupported target",
			literal:     "x",
			destType:    reflect.TypeOf(map[string]string{}),
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		actual, err := Parse(testCase.literal, testCase.destType)
		if testCase.expectError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestConverter_ParsePointer(t *testing.T) {
	actual, err := Parse("42", reflect.TypeOf((*int)(nil)))
	assert.Nil(t, err)
	value, ok := actual.(*int)
	if assert.True(t, ok) {
		assert.Equal(t, 42, *value)
	}
}

func TestConverter_ParseTime(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	var testCases = []struct {
		description string
		literal     string
		expect      time.Time
		expectError bool
	}{
		{
			description: "default layout",
			literal:     "2023-01-15 12:30:45.000",
			expect:      time.Date(2023, 1, 15, 12, 30, 45, 0, time.UTC),
		},
		{
			description: "rfc3339 fallback",
			literal:     "2023-01-15T12:30:45Z",
			expect:      time.Date(2023, 1, 15, 12, 30, 45, 0, time.UTC),
		},
		{
			description: "date only fallback",
			literal:     "2023-01-15",
			expect:      time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "unparseable",
			literal:     "15/01/2023",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		actual, err := converter.Parse(testCase.literal, reflect.TypeOf(time.Time{}))
		if testCase.expectError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.True(t, testCase.expect.Equal(actual.(time.Time)), testCase.description)
	}
}

func TestConverter_RegisterParser(t *testing.T) {
	type level int
	converter := NewConverter(DefaultOptions())
	converter.RegisterParser(reflect.TypeOf(level(0)), func(literal string, options Options) (interface{}, error) {
		switch literal {
		case "low":
			return level(1), nil
		case "high":
			return level(2), nil
		}
		return level(0), nil
	})
	actual, err := converter.Parse("high", reflect.TypeOf(level(0)))
	assert.Nil(t, err)
	assert.Equal(t, level(2), actual)
}
