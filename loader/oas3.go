package loader

import (
	"maps"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oasresolver/internal/httputil"
	"github.com/erraggy/oasresolver/internal/schemautil"
	"github.com/erraggy/oasresolver/schema"
)

const mediaTypeJSON = "application/json"

func loadOAS3(data []byte, cfg *loadConfig) (*Document, error) {
	l := openapi3.NewLoader()
	l.IsExternalRefsAllowed = cfg.externalRefs

	var (
		t   *openapi3.T
		err error
	)
	if cfg.filePath != nil {
		t, err = l.LoadFromDataWithPath(data, &url.URL{Path: filepath.ToSlash(*cfg.filePath)})
	} else {
		t, err = l.LoadFromData(data)
	}
	if err != nil {
		return nil, err
	}

	c := &oas3Converter{doc: t}
	return c.convert(), nil
}

type oas3Converter struct {
	doc      *openapi3.T
	warnings warnings
}

func (c *oas3Converter) convert() *Document {
	doc := &Document{Definitions: schema.Definitions{}}

	if comp := c.doc.Components; comp != nil {
		for _, name := range slices.Sorted(maps.Keys(comp.Schemas)) {
			sref := comp.Schemas[name]
			if sref == nil || sref.Value == nil {
				c.warnings.addf("components.schemas.%s: unresolved schema skipped", name)
				continue
			}
			doc.Definitions[name] = c.definition(name, sref.Value)
		}
	}

	if c.doc.Paths != nil {
		paths := c.doc.Paths.Map()
		for _, route := range slices.Sorted(maps.Keys(paths)) {
			item := paths[route]
			if item == nil {
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
	}

	doc.Warnings = c.warnings
	return doc
}

func (c *oas3Converter) definition(name string, s *openapi3.Schema) *schema.Definition {
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

func (c *oas3Converter) property(name string, sref *openapi3.SchemaRef) *schema.Property {
	if sref == nil {
		return &schema.Property{Name: name}
	}
	if sref.Value == nil {
		return &schema.Property{Name: name, Ref: sref.Ref}
	}
	s := sref.Value
	typ := primaryType(s.Type)
	if sref.Ref != "" && isObjectLike(typ) {
		return &schema.Property{Name: name, Ref: sref.Ref}
	}
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

func (c *oas3Converter) operation(route, method string, item *openapi3.PathItem, op *openapi3.Operation) *schema.Operation {
	where := strings.ToUpper(method) + " " + route
	return &schema.Operation{
		ID:          op.OperationID,
		Route:       route,
		Method:      method,
		Parameters:  mergeParameters(c.parameters(where, item.Parameters), c.parameters(where, op.Parameters)),
		RequestBody: c.requestBody(where, op.RequestBody),
	}
}

func (c *oas3Converter) parameters(where string, params openapi3.Parameters) []*schema.Property {
	var out []*schema.Property
	for _, pref := range params {
		if pref == nil || pref.Value == nil {
			c.warnings.addf("%s: unresolved parameter skipped", where)
			continue
		}
		p := pref.Value
		loc := schema.Location(p.In)
		if !loc.IsValid() || loc == schema.LocationBody {
			c.warnings.addf("%s: parameter %q in %q skipped", where, p.Name, p.In)
			continue
		}
		sref := p.Schema
		if sref == nil {
			sref = mediaSchema(p.Content)
		}
		if sref == nil {
			c.warnings.addf("%s: parameter %q has no schema", where, p.Name)
			continue
		}

		prop := c.property(p.Name, sref)
		prop.Location = loc
		prop.Required = p.Required
		if prop.Type == schema.TypeArray {
			prop.CollectionFormat = c.collectionFormat(where, p)
		}
		out = append(out, prop)
	}
	return out
}

// collectionFormat translates the style and explode settings of an array
// parameter.
func (c *oas3Converter) collectionFormat(where string, p *openapi3.Parameter) schema.CollectionFormat {
	sm, err := p.SerializationMethod()
	if err != nil {
		c.warnings.addf("%s: parameter %q: %v; using csv", where, p.Name, err)
		return schema.CollectionCSV
	}
	switch sm.Style {
	case openapi3.SerializationForm:
		if sm.Explode {
			return schema.CollectionMulti
		}
		return schema.CollectionCSV
	case openapi3.SerializationSimple:
		return schema.CollectionCSV
	case openapi3.SerializationSpaceDelimited:
		return schema.CollectionSSV
	case openapi3.SerializationPipeDelimited:
		return schema.CollectionPipes
	}
	c.warnings.addf("%s: parameter %q: style %q has no collection format; using csv", where, p.Name, sm.Style)
	return schema.CollectionCSV
}

func (c *oas3Converter) requestBody(where string, rb *openapi3.RequestBodyRef) *schema.RequestBody {
	if rb == nil || rb.Value == nil {
		return nil
	}
	sref := mediaSchema(rb.Value.Content)
	if sref == nil {
		c.warnings.addf("%s: request body has no schema", where)
		return nil
	}
	if sref.Ref != "" && (sref.Value == nil || isObjectLike(primaryType(sref.Value.Type))) {
		return &schema.RequestBody{Ref: sref.Ref}
	}
	if sref.Value == nil {
		return nil
	}
	if typ := primaryType(sref.Value.Type); !isObjectLike(typ) {
		c.warnings.addf("%s: request body of type %s skipped", where, typ)
		return nil
	}
	return &schema.RequestBody{Inline: c.definition("", sref.Value)}
}

// mediaSchema picks the JSON media type, or else the first media type in
// sorted order that carries a schema.
func mediaSchema(content openapi3.Content) *openapi3.SchemaRef {
	if mt := content[mediaTypeJSON]; mt != nil && mt.Schema != nil {
		return mt.Schema
	}
	for _, name := range slices.Sorted(maps.Keys(content)) {
		if mt := content[name]; mt != nil && mt.Schema != nil {
			return mt.Schema
		}
	}
	return nil
}
