// Package loader reads OpenAPI documents into schema definitions and
// operations.
//
// Both Swagger 2.0 and OAS 3.x are supported, in YAML or JSON. Decoding is
// delegated to github.com/getkin/kin-openapi; the loader then flattens the
// decoded document into the plain types of package schema that the builder
// and merger consume.
//
// # Quick Start
//
//	doc, err := loader.LoadWithOptions(
//		loader.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, op := range doc.Operations {
//		fmt.Println(op.Method, op.Route)
//	}
//
// # Conversion rules
//
// Properties of a definition are listed in alphabetical order because the
// decoded documents do not preserve key order.
//
// A property that references an object schema stays a reference. A property
// that references a primitive schema (a string enum, say) is inlined.
//
// OAS 3.x array parameters have their style and explode settings translated to
// a collection format: form with explode becomes multi, form without explode
// and simple become csv, spaceDelimited becomes ssv and pipeDelimited becomes
// pipes. Swagger 2.0 array parameters without a collectionFormat default to
// csv.
//
// Swagger 2.0 formData parameters and OAS 3.x parameters in unknown locations
// are skipped. Every skipped element is reported in Document.Warnings.
package loader
