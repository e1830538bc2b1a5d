package mapping

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/viant/remap"
	"github.com/viant/tagly/format/text"
)

// Catalog indexes described records by name so YAML documents can refer
// to record types symbolically. Registration order is preserved.
type Catalog struct {
	records  *linkedhashmap.Map // record name -> *remap.Record
	registry *remap.Registry
}

// NewCatalog creates a catalog synthesizing against the supplied
// registry; nil falls back to the package default registry.
func NewCatalog(registry *remap.Registry) *Catalog {
	if registry == nil {
		registry = remap.DefaultRegistry()
	}
	return &Catalog{records: linkedhashmap.New(), registry: registry}
}

// Register describes the supplied struct type and indexes it under its
// record name.
func (c *Catalog) Register(v interface{}, opts ...remap.Option) (*remap.Record, error) {
	record, err := remap.DescribeType(v, opts...)
	if err != nil {
		return nil, err
	}
	if _, ok := c.records.Get(record.Name); ok {
		return nil, fmt.Errorf("record %q is already registered", record.Name)
	}
	c.records.Put(record.Name, record)
	return record, nil
}

// Record returns the record registered under name, or nil.
func (c *Catalog) Record(name string) *remap.Record {
	value, ok := c.records.Get(name)
	if !ok {
		return nil
	}
	return value.(*remap.Record)
}

// Names returns registered record names in registration order.
func (c *Catalog) Names() []string {
	keys := c.records.Keys()
	ret := make([]string, len(keys))
	for i, key := range keys {
		ret[i] = key.(string)
	}
	return ret
}

// Apply synthesizes and registers a routine per document mapping,
// returned in document order.
func (c *Catalog) Apply(document *Document) ([]*remap.Routine, error) {
	var ret []*remap.Routine
	for _, mapping := range document.Mappings {
		routine, err := c.apply(mapping)
		if err != nil {
			return nil, err
		}
		ret = append(ret, routine)
	}
	return ret, nil
}

func (c *Catalog) apply(mapping *Mapping) (*remap.Routine, error) {
	source := c.Record(mapping.Source)
	if source == nil {
		return nil, fmt.Errorf("unknown source record %q", mapping.Source)
	}
	target := c.Record(mapping.Target)
	if target == nil {
		return nil, fmt.Errorf("unknown target record %q", mapping.Target)
	}
	overrides := map[string]remap.Origin{}
	for name, rule := range mapping.Fields {
		field := resolveField(target, name)
		if field == nil {
			return nil, fmt.Errorf("unknown field %q of %q", name, mapping.Target)
		}
		if rule.Default {
			overrides[field.Name] = remap.UseDefault()
			continue
		}
		from := rule.From
		if resolved := resolveField(source, from); resolved != nil {
			from = resolved.Name
		}
		overrides[field.Name] = remap.FromField(from)
	}
	routine, err := c.registry.Synthesize(source, target, overrides)
	if err != nil {
		return nil, fmt.Errorf("mapping %v->%v: %w", mapping.Source, mapping.Target, err)
	}
	c.registry.Register(routine)
	return routine, nil
}

// resolveField matches a document field name against record fields,
// falling back to upper camel normalization so snake case YAML keys
// reach Go field names.
func resolveField(record *remap.Record, name string) *remap.Field {
	if field := record.Field(name); field != nil {
		return field
	}
	caseFormat := text.DetectCaseFormat(name)
	if !caseFormat.IsDefined() {
		return nil
	}
	return record.Field(caseFormat.Format(name, text.CaseFormatUpperCamel))
}
