package loader

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"

	"github.com/erraggy/oasresolver/internal/httputil"
	"github.com/erraggy/oasresolver/internal/schemautil"
	"github.com/erraggy/oasresolver/schema"
)

// Swagger 2.0 parameter locations with no counterpart in schema.Location.
const (
	inBody     = "body"
	inFormData = "formData"
)

// loadOAS2 re-encodes the decoded YAML tree as JSON; openapi2.T only
// implements JSON decoding.
func loadOAS2(root map[string]any) (*Document, error) {
	data, err := json.Marshal(root)
	if err != nil {
		return nil, err
	}
	var t openapi2.T
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}

	c := &oas2Converter{doc: &t}
	return c.convert(), nil
}

type oas2Converter struct {
	doc      *openapi2.T
	warnings warnings
}

func (c *oas2Converter) convert() *Document {
	doc := &Document{Definitions: schema.Definitions{}}

	for _, name := range slices.Sorted(maps.Keys(c.doc.Definitions)) {
		sref := c.doc.Definitions[name]
		if sref == nil || sref.Value == nil {
			c.warnings.addf("definitions.%s: aliased definition skipped", name)
			continue
		}
		doc.Definitions[name] = c.definition(name, sref.Value)
	}

	for _, route := range slices.Sorted(maps.Keys(c.doc.Paths)) {
		item := c.doc.Paths[route]
		if item == nil {
			continue
		}
		if item.Ref != "" {
			c.warnings.addf("%s: path item reference %q skipped", route, item.Ref)
			continue
		}
		ops := item.Operations()
		for _, method := range httputil.Methods() {
			op := ops[strings.ToUpper(method)]
			if op == nil {
				continue
			}
			doc.Operations = append(doc.Operations, c.operation(route, method, item, op))
		}
	}

	doc.Warnings = c.warnings
	return doc
}

func (c *oas2Converter) definition(name string, s *openapi2.Schema) *schema.Definition {
	def := &schema.Definition{
		Name:     name,
		Type:     primaryType(s.Type),
		Required: required(s.Required),
	}
	if def.Type == "" && len(s.Properties) > 0 {
		def.Type = schema.TypeObject
	}
	for _, prop := range slices.Sorted(maps.Keys(s.Properties)) {
		def.Properties = append(def.Properties, c.property(prop, s.Properties[prop]))
	}
	return def
}

// property converts a schema property. References to primitive definitions
// are inlined; openapi2 leaves references unresolved.
func (c *oas2Converter) property(name string, sref *openapi2.SchemaRef) *schema.Property {
	if sref == nil {
		return &schema.Property{Name: name}
	}
	if sref.Ref != "" {
		target := c.doc.Definitions[schema.RefName(sref.Ref)]
		if target != nil && target.Value != nil && !isObjectLike(primaryType(target.Value.Type)) {
			return fromSchema2(name, target.Value)
		}
		return &schema.Property{Name: name, Ref: sref.Ref}
	}
	if sref.Value == nil {
		return &schema.Property{Name: name}
	}
	return fromSchema2(name, sref.Value)
}

func fromSchema2(name string, s *openapi2.Schema) *schema.Property {
	typ := primaryType(s.Type)
	return &schema.Property{
		Name:    name,
		Type:    typ,
		Format:  s.Format,
		Default: schemautil.Literal(typ, s.Default),
		Enum:    literals(typ, s.Enum),
		Constraints: bounds{
			minimum:      s.Min,
			maximum:      s.Max,
			multipleOf:   s.MultipleOf,
			exclusiveMin: s.ExclusiveMin,
			exclusiveMax: s.ExclusiveMax,
			minLength:    s.MinLength,
			maxLength:    s.MaxLength,
			pattern:      s.Pattern,
			minItems:     s.MinItems,
			maxItems:     s.MaxItems,
			uniqueItems:  s.UniqueItems,
		}.constraints(),
	}
}

func (c *oas2Converter) operation(route, method string, item *openapi2.PathItem, op *openapi2.Operation) *schema.Operation {
	where := strings.ToUpper(method) + " " + route
	pathParams, pathBody := c.parameters(where, item.Parameters)
	opParams, opBody := c.parameters(where, op.Parameters)

	body := opBody
	if body == nil {
		body = pathBody
	}
	return &schema.Operation{
		ID:          op.OperationID,
		Route:       route,
		Method:      method,
		Parameters:  mergeParameters(pathParams, opParams),
		RequestBody: body,
	}
}

func (c *oas2Converter) parameters(where string, params openapi2.Parameters) ([]*schema.Property, *schema.RequestBody) {
	var (
		out  []*schema.Property
		body *schema.RequestBody
	)
	for _, p := range params {
		if p == nil {
			continue
		}
		if p.Ref != "" {
			resolved := c.doc.Parameters[schema.RefName(p.Ref)]
			if resolved == nil {
				c.warnings.addf("%s: unresolved parameter %q skipped", where, p.Ref)
				continue
			}
			p = resolved
		}

		switch p.In {
		case inBody:
			body = c.requestBody(where, p.Schema)
			continue
		case inFormData:
			c.warnings.addf("%s: formData parameter %q skipped", where, p.Name)
			continue
		}
		loc := schema.Location(p.In)
		if !loc.IsValid() {
			c.warnings.addf("%s: parameter %q in %q skipped", where, p.Name, p.In)
			continue
		}

		typ := primaryType(p.Type)
		prop := &schema.Property{
			Name:     p.Name,
			Type:     typ,
			Format:   p.Format,
			Required: p.Required,
			Default:  schemautil.Literal(typ, p.Default),
			Enum:     literals(typ, p.Enum),
			Location: loc,
			Constraints: bounds{
				minimum:      p.Minimum,
				maximum:      p.Maximum,
				multipleOf:   p.MultipleOf,
				exclusiveMin: p.ExclusiveMin,
				exclusiveMax: p.ExclusiveMax,
				minLength:    p.MinLength,
				maxLength:    p.MaxLength,
				pattern:      p.Pattern,
				minItems:     p.MinItems,
				maxItems:     p.MaxItems,
				uniqueItems:  p.UniqueItems,
			}.constraints(),
		}
		if typ == schema.TypeArray {
			prop.CollectionFormat = c.collectionFormat(where, p)
		}
		out = append(out, prop)
	}
	return out, body
}

// collectionFormat applies the Swagger 2.0 default of csv.
func (c *oas2Converter) collectionFormat(where string, p *openapi2.Parameter) schema.CollectionFormat {
	cf := schema.CollectionFormat(p.CollectionFormat)
	switch {
	case cf == "":
		return schema.CollectionCSV
	case !cf.IsValid():
		c.warnings.addf("%s: parameter %q: unknown collectionFormat %q; using csv", where, p.Name, cf)
		return schema.CollectionCSV
	}
	return cf
}

func (c *oas2Converter) requestBody(where string, sref *openapi2.SchemaRef) *schema.RequestBody {
	switch {
	case sref == nil:
		c.warnings.addf("%s: body parameter has no schema", where)
		return nil
	case sref.Ref != "":
		return &schema.RequestBody{Ref: sref.Ref}
	case sref.Value == nil:
		return nil
	}
	if typ := primaryType(sref.Value.Type); !isObjectLike(typ) {
		c.warnings.addf("%s: request body of type %s skipped", where, typ)
		return nil
	}
	return &schema.RequestBody{Inline: c.definition("", sref.Value)}
}
