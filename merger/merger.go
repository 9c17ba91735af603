package merger

import (
	"strings"

	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/oaslog"
	"github.com/erraggy/oasresolver/schema"
)

// Merger flattens operations into schema definitions. It keeps no state
// between calls and is safe for concurrent use.
type Merger struct {
	strategy Strategy
	logger   oaslog.Logger
}

// New creates a Merger.
func New(opts ...Option) (*Merger, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return &Merger{strategy: cfg.strategy, logger: cfg.logger}, nil
}

// Strategy returns the configured strategy.
func (m *Merger) Strategy() Strategy {
	return m.strategy
}

// mergeContext is the per-call state of one merge.
type mergeContext struct {
	strategy Strategy
	order    []string
	entries  map[string]*mergeEntry
}

type mergeEntry struct {
	location schema.Location
	property *schema.Property
	required bool
}

func newMergeContext(s Strategy) *mergeContext {
	return &mergeContext{strategy: s, entries: make(map[string]*mergeEntry)}
}

// add stores p under its strategy key. A replaced key keeps its position.
func (c *mergeContext) add(location schema.Location, p *schema.Property, required bool) (key string, replaced bool) {
	key = c.strategy.Key(location, p.Name)
	if _, replaced = c.entries[key]; !replaced {
		c.order = append(c.order, key)
	}
	c.entries[key] = &mergeEntry{location: location, property: p, required: required}
	return key, replaced
}

func (c *mergeContext) definition(name string) *schema.Definition {
	def := &schema.Definition{
		Name:       name,
		Type:       schema.TypeObject,
		Properties: make([]*schema.Property, 0, len(c.order)),
	}
	for _, key := range c.order {
		e := c.entries[key]
		p := e.property.Clone()
		p.Name = key
		p.Location = e.location
		p.Required = e.required
		def.Properties = append(def.Properties, p)
		if e.required {
			def.Required = append(def.Required, key)
		}
	}
	return def
}

// Merge flattens op into a definition of type object with one property per
// merged key. Body references are resolved through lookup; a reference that
// cannot be resolved fails with *oaserrors.ReferenceError.
func (m *Merger) Merge(op *schema.Operation, lookup schema.Lookup) (*schema.Definition, error) {
	if op == nil {
		return nil, &oaserrors.ConfigError{Option: "operation", Message: "operation cannot be nil"}
	}
	ctx := newMergeContext(m.strategy)
	opName := OperationName(op)

	for _, p := range op.Parameters {
		if p == nil {
			continue
		}
		m.add(ctx, opName, p.Location, p, p.Required)
	}

	if body := op.RequestBody; body != nil {
		switch {
		case body.Ref != "":
			var ref *schema.Definition
			ok := false
			if lookup != nil {
				ref, ok = lookup.Lookup(body.Ref)
			}
			if !ok {
				return nil, &oaserrors.ReferenceError{
					Ref:       body.Ref,
					Operation: opName,
					Message:   "definition not found",
				}
			}
			for _, p := range ref.Properties {
				m.add(ctx, opName, schema.LocationBody, p, ref.IsRequired(p.Name))
			}
		case body.Inline != nil:
			for _, p := range body.Inline.Properties {
				m.add(ctx, opName, schema.LocationBody, p, p.Required || body.Inline.IsRequired(p.Name))
			}
		}
	}

	def := ctx.definition(opName)
	m.logger.Debug("merged operation", "operation", opName, "strategy", string(m.strategy.Name()),
		"properties", len(def.Properties))
	return def, nil
}

func (m *Merger) add(ctx *mergeContext, opName string, location schema.Location, p *schema.Property, required bool) {
	if key, replaced := ctx.add(location, p, required); replaced {
		m.logger.Debug("parameter replaced", "operation", opName, "key", key, "location", string(location))
	}
}

// OperationName returns the operation ID, or "METHOD /route" when the
// operation has none.
func OperationName(op *schema.Operation) string {
	if op.ID != "" {
		return op.ID
	}
	return strings.ToUpper(op.Method) + " " + op.Route
}
