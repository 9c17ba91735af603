// Package oasresolver turns OpenAPI schema declarations into runtime value
// resolvers: given a definition or an operation, it produces a compiled
// resolution spec that coerces raw input (query strings, headers, JSON
// bodies) into typed values and checks them against the declared
// constraints.
//
// # Overview
//
// The library is made of small packages that are used together:
//
//   - schema: property, definition and operation descriptors
//   - normalizer: string-to-boolean and string-to-integer coercions
//   - validator: the constraint checks (length, range, pattern, dates, ...)
//   - builder: compiles a schema definition into a resolver.Spec
//   - merger: flattens an operation's parameters and body into one definition
//   - resolver: resolves raw values against a Spec, eagerly or key by key
//   - loader: reads Swagger 2.0 and OpenAPI 3.x documents into schema types
//   - registry: caches definitions and compiled specs, with warmup
//   - httpresolver: collects raw values from an *http.Request
//
// Supported document versions:
//   - OAS 2.0 (Swagger): https://spec.openapis.org/oas/v2.0.html
//   - OAS 3.0.x: https://spec.openapis.org/oas/v3.0.3.html
//
// # Installation
//
//	go get github.com/erraggy/oasresolver
//
// # Quick Start
//
// Load a document and resolve values for an operation:
//
//	doc, err := loader.LoadWithOptions(loader.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	reg, err := registry.New(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	values, err := reg.ResolveOperation(ctx, "/pets", "GET", map[string]any{
//		"limit": "5",
//		"tags":  "cat,dog",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	limit, _ := values.Get("limit") // int64(5)
//	tags, _ := values.Get("tags")   // []any{"cat", "dog"}
//
// Compile a definition by hand:
//
//	b, _ := builder.New()
//	spec, err := b.Build(&schema.Definition{
//		Name:     "Page",
//		Required: []string{"size"},
//		Properties: []*schema.Property{
//			{Name: "size", Type: schema.TypeInteger, Location: schema.LocationQuery},
//		},
//	})
//	res, _ := resolver.New(spec)
//	values, err := res.Resolve(map[string]any{"size": "10"})
//
// # Resolution Pipeline
//
// Each key goes through the same steps: a missing value takes its default
// (or fails when required), the normalizer coerces strings taken from text
// locations, the type check accepts one of the allowed types, the enum check
// runs, then the validators attached at compile time. Array properties with
// a collection format are finally split into a sequence.
//
// Failures are collected per key into an *oaserrors.AggregateError in
// declaration order, unless the resolver is created with WithFailFast.
//
// # Merge Strategies
//
// An operation is flattened into one definition before compiling:
//
//   - replace-last-win (default): keys are bare names and a later parameter
//     with the same name replaces an earlier one (body beats path)
//   - combine-name: keys are prefixed with the location, e.g. "query_id",
//     so same-named parameters from different locations coexist
//
// # Error Handling
//
// All errors are typed and match sentinels in package oaserrors:
//
//	if errors.Is(err, oaserrors.ErrValidation) {
//		var verr *oaserrors.ValidationError
//		errors.As(err, &verr)
//		fmt.Println(verr.Property, verr.Rule)
//	}
//
// # Command-Line Interface
//
// The oasresolver command exposes the same operations:
//
//	oasresolver list openapi.yaml
//	oasresolver compile openapi.yaml --definition Pet
//	oasresolver resolve openapi.yaml --route /pets --method GET --set limit=5
//	oasresolver warmup openapi.yaml
//	oasresolver mcp
//
// Runtime defaults come from OASRESOLVER_* environment variables or a YAML
// file passed with --config.
package oasresolver
