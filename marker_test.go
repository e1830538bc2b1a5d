package remap

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/xunsafe"
)

func TestMarker_IsSet(t *testing.T) {

	var testCases = []struct {
		description string
		provider    func() interface{}
		expectSet   []string
		expectUnset []string
	}{
		{
			description: "aligned set marker",
			provider: func() interface{} {
				type EntityHas struct {
					Id     bool
					Name   bool
					Active bool
				}
				type Entity struct {
					Id     int
					Name   string
					Active bool
					Has    *EntityHas `setMarker:"true"`
				}
				return &Entity{Has: &EntityHas{Id: true, Active: true}, Id: 1, Active: true}
			},
			expectSet:   []string{"Id", "Active"},
			expectUnset: []string{"Name"},
		},
		{
			description: "value holder set marker",
			provider: func() interface{} {
				type EntityHas struct {
					Id   bool
					Name bool
				}
				type Entity struct {
					Id   int
					Name string
					Has  EntityHas `setMarker:"true"`
				}
				return &Entity{Has: EntityHas{Name: true}, Name: "abc"}
			},
			expectSet:   []string{"Name"},
			expectUnset: []string{"Id"},
		},
		{
			description: "nil holder counts all set",
			provider: func() interface{} {
				type EntityHas struct {
					Id   bool
					Name bool
				}
				type Entity struct {
					Id   int
					Name string
					Has  *EntityHas `setMarker:"true"`
				}
				return &Entity{Id: 1}
			},
			expectSet: []string{"Id", "Name"},
		},
	}

	for _, testCase := range testCases {
		value := testCase.provider()
		rType := reflect.TypeOf(value).Elem()
		marker, err := NewMarker(rType)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		valuePtr := xunsafe.AsPointer(value)
		for _, name := range testCase.expectSet {
			index := marker.Index(name)
			if !assert.NotEqual(t, index, -1, testCase.description) {
				continue
			}
			assert.True(t, marker.IsSet(valuePtr, index), name+" failed set test for "+testCase.description)
		}
		for _, name := range testCase.expectUnset {
			index := marker.Index(name)
			if !assert.NotEqual(t, index, -1, testCase.description) {
				continue
			}
			assert.False(t, marker.IsSet(valuePtr, index), name+" failed unset test for "+testCase.description)
		}
	}
}

func TestMarker_Set(t *testing.T) {
	type EntityHas struct {
		Id   bool
		Name bool
	}
	type Entity struct {
		Id   int
		Name string
		Has  *EntityHas `setMarker:"true"`
	}
	marker, err := NewMarker(reflect.TypeOf(Entity{}))
	assert.Nil(t, err)

	entity := &Entity{}
	ptr := xunsafe.AsPointer(entity)
	err = marker.Set(ptr, marker.Index("Name"), true)
	assert.NotNil(t, err, "nil holder rejects set")

	marker.EnsureHolder(ptr)
	if !assert.NotNil(t, entity.Has, "holder allocated") {
		return
	}
	assert.Nil(t, marker.Set(ptr, marker.Index("Name"), true))
	assert.True(t, entity.Has.Name)
	assert.False(t, entity.Has.Id)

	assert.Nil(t, marker.SetAll(ptr, true))
	assert.True(t, entity.Has.Id)
}

func TestGenMarkerFields(t *testing.T) {
	type Entity struct {
		Id   int
		Name string
	}
	fields := GenMarkerFields(reflect.TypeOf(Entity{}))
	if !assert.Equal(t, 2, len(fields)) {
		return
	}
	holderType := reflect.StructOf(fields)
	assert.Equal(t, "Id", holderType.Field(0).Name)
	assert.Equal(t, "Name", holderType.Field(1).Name)
	for i := 0; i < holderType.NumField(); i++ {
		assert.Equal(t, reflect.Bool, holderType.Field(i).Type.Kind())
	}
}
