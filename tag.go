package remap

import (
	"fmt"
	"reflect"

	"github.com/viant/remap/tags"
)

const (
	// TagName defines the mapping metadata tag
	TagName = "remap"

	// SetMarkerTag marks the field-presence holder field
	SetMarkerTag = "setMarker"
)

// IsSetMarker returns true if tag marks the presence holder field.
func IsSetMarker(tag reflect.StructTag) bool {
	return tag.Get(SetMarkerTag) == "true"
}

// fieldTag holds parsed remap tag values; nil flag pointers mean
// the descriptor derives them from the field type.
type fieldTag struct {
	Name       string
	Default    string
	HasDefault bool
	Required   *bool
	AllowNone  *bool
	Ignore     bool
}

func parseFieldTag(tag reflect.StructTag) (*fieldTag, error) {
	ret := &fieldTag{}
	literal, ok := tag.Lookup(TagName)
	if !ok {
		return ret, nil
	}
	if literal == "-" {
		ret.Ignore = true
		return ret, nil
	}
	err := tags.Values(literal).MatchPairs(func(key, value string) error {
		switch key {
		case "name":
			ret.Name = value
		case "default":
			ret.Default = value
			ret.HasDefault = true
		case "required":
			flag := true
			ret.Required = &flag
		case "optional":
			flag := true
			ret.AllowNone = &flag
		case "notnull":
			flag := false
			ret.AllowNone = &flag
		default:
			return fmt.Errorf("%w: unknown %v tag option: %v", ErrConfiguration, TagName, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
