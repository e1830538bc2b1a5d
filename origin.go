package remap

import "fmt"

type (
	// Origin describes where a target field value comes from.
	// Variants: a source field reference, a producer function or the
	// use-default sentinel; the synthesizer resolves them by type switch.
	Origin interface {
		origin()
		String() string
	}

	fieldOrigin struct {
		name string
	}

	funcOrigin struct {
		fn interface{}
	}

	defaultOrigin struct{}
)

func (o *fieldOrigin) origin()   {}
func (o *funcOrigin) origin()    {}
func (o *defaultOrigin) origin() {}

func (o *fieldOrigin) String() string {
	return "field:" + o.name
}

func (o *funcOrigin) String() string {
	return fmt.Sprintf("func:%T", o.fn)
}

func (o *defaultOrigin) String() string {
	return "default"
}

// FromField returns an origin copying the named source field.
func FromField(name string) Origin {
	return &fieldOrigin{name: name}
}

// FromFunc returns an origin producing the value with fn.
// Accepted shapes: func() T or func(Source) T, with Source the source
// record value or a pointer to it; validated during synthesis.
func FromFunc(fn interface{}) Origin {
	return &funcOrigin{fn: fn}
}

// UseDefault returns the origin that leaves the target field unset so its
// declared default applies; rejected at synthesis when the field is required.
func UseDefault() Origin {
	return &defaultOrigin{}
}
