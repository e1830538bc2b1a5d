package remap

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeType(t *testing.T) {

	type Audit struct {
		CreatedBy string
	}

	type field struct {
		name      string
		allowNone bool
		required  bool
		valueType reflect.Type
	}

	var testCases = []struct {
		description string
		provider    func() interface{}
		options     []Option
		expectName  string
		expectKind  RecordKind
		expect      []field
		expectError bool
	}{
		{
			description: "value fields are required, pointer fields optional",
			provider: func() interface{} {
				type Entity struct {
					Id    int
					Name  string
					Count *int
				}
				return Entity{}
			},
			expectName: "Entity",
			expectKind: RecordGeneric,
			expect: []field{
				{name: "Id", required: true, valueType: reflect.TypeOf(0)},
				{name: "Name", required: true, valueType: reflect.TypeOf("")},
				{name: "Count", allowNone: true, valueType: reflect.TypeOf(0)},
			},
		},
		{
			description: "tag adjusted flags and name",
			provider: func() interface{} {
				type Entity struct {
					Id    int    `remap:"name=ID"`
					Name  string `remap:"default=unknown"`
					Note  *string
					Skip  string `remap:"-"`
					Count int    `remap:"optional"`
				}
				return &Entity{}
			},
			expectName: "Entity",
			expectKind: RecordGeneric,
			expect: []field{
				{name: "ID", required: true, valueType: reflect.TypeOf(0)},
				{name: "Name", valueType: reflect.TypeOf("")},
				{name: "Note", allowNone: true, valueType: reflect.TypeOf("")},
				{name: "Count", allowNone: true, valueType: reflect.TypeOf(0)},
			},
		},
		{
			description: "set marker holder turns record into tracksSet kind",
			provider: func() interface{} {
				type EntityHas struct {
					Id   bool
					Name bool
				}
				type Entity struct {
					Id   int
					Name *string
					Has  *EntityHas `setMarker:"true"`
				}
				return Entity{}
			},
			expectName: "Entity",
			expectKind: RecordTracksSet,
			expect: []field{
				{name: "Id", required: true, valueType: reflect.TypeOf(0)},
				{name: "Name", allowNone: true, valueType: reflect.TypeOf("")},
			},
		},
		{
			description: "embedded struct maps as a plain field named by its type",
			provider: func() interface{} {
				type Entity struct {
					Audit
					Id int
				}
				return Entity{}
			},
			expectName: "Entity",
			expectKind: RecordGeneric,
			expect: []field{
				{name: "Audit", required: true, valueType: reflect.TypeOf(Audit{})},
				{name: "Id", required: true, valueType: reflect.TypeOf(0)},
			},
		},
		{
			description: "record name option",
			provider: func() interface{} {
				type Entity struct {
					Id int
				}
				return Entity{}
			},
			options:    []Option{WithName("EntityDTO")},
			expectName: "EntityDTO",
			expectKind: RecordGeneric,
			expect: []field{
				{name: "Id", required: true, valueType: reflect.TypeOf(0)},
			},
		},
		{
			description: "non struct type",
			provider: func() interface{} {
				return 1
			},
			expectError: true,
		},
		{
			description: "invalid default literal",
			provider: func() interface{} {
				type Entity struct {
					Id int `remap:"default=abc"`
				}
				return Entity{}
			},
			expectError: true,
		},
		{
			description: "unknown tag option",
			provider: func() interface{} {
				type Entity struct {
					Id int `remap:"bogus"`
				}
				return Entity{}
			},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		record, err := DescribeType(testCase.provider(), testCase.options...)
		if testCase.expectError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expectName, record.Name, testCase.description)
		assert.Equal(t, testCase.expectKind, record.Kind, testCase.description)
		if !assert.Equal(t, len(testCase.expect), len(record.Fields), testCase.description) {
			continue
		}
		for i, expect := range testCase.expect {
			actual := record.Fields[i]
			assert.Equal(t, expect.name, actual.Name, testCase.description+" "+expect.name)
			assert.Equal(t, expect.allowNone, actual.AllowNone, testCase.description+" "+expect.name)
			assert.Equal(t, expect.required, actual.Required, testCase.description+" "+expect.name)
			assert.Equal(t, expect.valueType, actual.Type, testCase.description+" "+expect.name)
		}
	}
}

func TestDescribeType_DefaultFactory(t *testing.T) {
	type Entity struct {
		Id   int
		Note string
	}
	record, err := DescribeType(Entity{}, WithDefault("Note", func() string { return "n/a" }))
	assert.Nil(t, err)
	note := record.Field("Note")
	assert.True(t, note.HasDefault())
	assert.False(t, note.Required)

	base, err := DescribeType(Entity{})
	assert.Nil(t, err)
	assert.False(t, base.Field("Note").HasDefault(), "options apply to a private copy")

	_, err = DescribeType(Entity{}, WithDefault("Missing", func() string { return "" }))
	assert.NotNil(t, err)
	_, err = DescribeType(Entity{}, WithDefault("Note", func() int { return 0 }))
	assert.NotNil(t, err, "factory output has to match field type")
}
