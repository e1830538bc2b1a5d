package remap

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/francoispqt/gojay"
)

type (
	// Plan is the introspectable form of a synthesized routine: one entry
	// per emitted step, in execution order.
	Plan struct {
		Source string
		Target string
		Steps  PlanSteps
	}

	// PlanStep names the strategy chosen for one target field.
	PlanStep struct {
		Target   string
		Strategy string
		Source   string
	}

	// PlanSteps represents plan steps
	PlanSteps []*PlanStep
)

// MarshalJSONObject encodes the plan
func (p *Plan) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("source", p.Source)
	enc.StringKey("target", p.Target)
	enc.ArrayKey("steps", p.Steps)
}

// IsNil returns true on nil receiver
func (p *Plan) IsNil() bool {
	return p == nil
}

// MarshalJSONArray encodes plan steps
func (s PlanSteps) MarshalJSONArray(enc *gojay.Encoder) {
	for _, item := range s {
		enc.Object(item)
	}
}

// IsNil returns true on empty steps
func (s PlanSteps) IsNil() bool {
	return len(s) == 0
}

// MarshalJSONObject encodes a plan step
func (p *PlanStep) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("target", p.Target)
	enc.StringKey("strategy", p.Strategy)
	enc.StringKeyOmitEmpty("source", p.Source)
}

// IsNil returns true on nil receiver
func (p *PlanStep) IsNil() bool {
	return p == nil
}

// JSON returns the plan encoded as JSON.
func (p *Plan) JSON() ([]byte, error) {
	return gojay.MarshalJSONObject(p)
}

// Dump returns an exhaustive textual rendering, for debugging.
func (p *Plan) Dump() string {
	return spew.Sdump(p)
}
