package remap

import (
	"errors"
	"fmt"
)

// ErrConfiguration wraps override and descriptor misuse detected during synthesis.
var ErrConfiguration = errors.New("invalid mapping configuration")

// UnmappableFieldError reports a required target field with no source field and no override.
type UnmappableFieldError struct {
	Field  string
	Record string
}

func (e *UnmappableFieldError) Error() string {
	return fmt.Sprintf("required field '%v' of '%v' has no mapping source", e.Field, e.Record)
}

// ConversionError reports a field pair no strategy can map.
type ConversionError struct {
	Source       string
	SourceRecord string
	Target       string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("'%v' of '%v' cannot be converted to '%v'", e.Source, e.SourceRecord, e.Target)
}
