package remap

import (
	"reflect"
)

// RecordKind distinguishes record null-handling flavors.
type RecordKind int

const (
	// RecordGeneric represents a plain record
	RecordGeneric RecordKind = iota
	// RecordTracksSet represents a record exposing which optional fields
	// were explicitly provided, via a setMarker holder
	RecordTracksSet
)

// String returns kind name
func (k RecordKind) String() string {
	switch k {
	case RecordTracksSet:
		return "tracksSet"
	default:
		return "generic"
	}
}

type (
	// Record describes a record type being mapped from or to: a diagnostic
	// name, the reflect type used to construct instances, and ordered
	// field descriptors.
	Record struct {
		Name   string
		Type   reflect.Type
		Kind   RecordKind
		Fields []*Field

		byName map[string]*Field
		marker *Marker
	}
)

// Field returns a field descriptor matched by mapping name, or nil.
func (r *Record) Field(name string) *Field {
	return r.byName[name]
}

// Marker returns the explicit-set marker, nil for generic records.
func (r *Record) Marker() *Marker {
	return r.marker
}

// TracksSet returns true if the record tracks explicitly set fields.
func (r *Record) TracksSet() bool {
	return r.Kind == RecordTracksSet
}

func (r *Record) clone() *Record {
	ret := *r
	ret.Fields = make([]*Field, len(r.Fields))
	ret.byName = make(map[string]*Field, len(r.Fields))
	for i, field := range r.Fields {
		cloned := field.clone()
		ret.Fields[i] = cloned
		ret.byName[cloned.Name] = cloned
	}
	return &ret
}
