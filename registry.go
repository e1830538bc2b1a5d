package remap

import (
	"reflect"
	"sync"
)

// TypePair identifies a registered conversion direction.
type TypePair struct {
	Source reflect.Type
	Target reflect.Type
}

// Registry holds synthesized routines keyed by the ordered record type
// pair. Registration order is preserved for diagnostics.
type Registry struct {
	mu       sync.RWMutex
	routines map[TypePair]*Routine
	order    []TypePair
}

// Register stores the routine under its record type pair; a routine for
// an already registered pair replaces the previous one.
func (r *Registry) Register(routine *Routine) {
	pair := TypePair{Source: routine.src.Type, Target: routine.dst.Type}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.routines[pair]; !ok {
		r.order = append(r.order, pair)
	}
	r.routines[pair] = routine
}

// Lookup returns the routine mapping source to target record type, or nil.
// Types compare de-nulled: pass the element struct types.
func (r *Registry) Lookup(source, target reflect.Type) *Routine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.routines[TypePair{Source: source, Target: target}]
}

// Pairs returns registered pairs in registration order.
func (r *Registry) Pairs() []TypePair {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]TypePair, len(r.order))
	copy(ret, r.order)
	return ret
}

// NewRegistry creates an empty routine registry.
func NewRegistry() *Registry {
	return &Registry{routines: map[TypePair]*Routine{}}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the shared package registry backing the
// package level Map and MapTo functions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
