// Package schema defines the in-memory model consumed by the compiler, merger and
// resolver: property descriptors, schema definitions and operations.
//
// A [Property] unifies OpenAPI parameters and object properties into one shape.
// Parameters carry their [Location]; object properties merged into an operation
// schema are tagged with [LocationBody].
//
//	def := &schema.Definition{
//	    Name:     "Pet",
//	    Required: []string{"id"},
//	    Properties: []*schema.Property{
//	        {Name: "id", Type: schema.TypeInteger},
//	        {Name: "tag", Type: schema.TypeString, Constraints: schema.Constraints{MaxLength: schema.Ptr(16)}},
//	    },
//	}
//
// Definitions are looked up by bare name or by local reference through [Lookup]:
//
//	defs := schema.Definitions{"Pet": def}
//	pet, ok := defs.Lookup("#/components/schemas/Pet")
package schema
