// Package registry caches compiled resolution specs for the definitions and
// operations of a loaded document.
//
// A lookup first consults the in-process memo of compiled specs. On a miss
// the schema definition (for operations, the merged definition) is read from
// a Store, or produced from the document and written back to the Store as
// JSON with a TTL. The definition is then compiled with a builder.Builder
// and memoized.
//
// Two stores are provided: MemoryStore for a single process and RedisStore
// for sharing merged definitions between processes.
//
//	doc, _ := loader.LoadWithOptions(loader.WithFilePath("api.yaml"))
//	reg, err := registry.New(doc,
//		registry.WithStore(registry.NewRedisStore(client, "oasresolver:")),
//	)
//	values, err := reg.ResolveOperation(ctx, "/pets", "get", raw)
//
// Metrics are exported through prometheus when a Metrics value is configured
// with WithMetrics.
package registry
