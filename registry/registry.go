package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/erraggy/oasresolver/builder"
	"github.com/erraggy/oasresolver/internal/httputil"
	"github.com/erraggy/oasresolver/internal/schemautil"
	"github.com/erraggy/oasresolver/loader"
	"github.com/erraggy/oasresolver/merger"
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/oaslog"
	"github.com/erraggy/oasresolver/resolver"
	"github.com/erraggy/oasresolver/schema"
)

// ErrNotFound indicates the document declares no such definition or
// operation.
var ErrNotFound = errors.New("registry: not found")

// Registry compiles and caches resolution specs for one document. It is safe
// for concurrent use.
type Registry struct {
	doc          *loader.Document
	store        Store
	ttl          time.Duration
	namespace    string
	builder      *builder.Builder
	merger       *merger.Merger
	resolverOpts []resolver.Option
	metrics      *Metrics
	logger       oaslog.Logger

	mu        sync.Mutex
	specs     map[string]*resolver.Spec
	resolvers map[*resolver.Spec]*resolver.Resolver
}

// New creates a Registry over doc.
func New(doc *loader.Document, opts ...Option) (*Registry, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "document cannot be nil"}
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.store == nil {
		cfg.store = NewMemoryStore()
	}
	if cfg.namespace == "" {
		cfg.namespace = defaultNamespace(doc)
	}
	if cfg.builder == nil {
		b, err := builder.New(builder.WithLogger(cfg.logger))
		if err != nil {
			return nil, err
		}
		cfg.builder = b
	}
	if cfg.merger == nil {
		m, err := merger.New(merger.WithLogger(cfg.logger))
		if err != nil {
			return nil, err
		}
		cfg.merger = m
	}

	return &Registry{
		doc:          doc,
		store:        cfg.store,
		ttl:          cfg.ttl,
		namespace:    cfg.namespace,
		builder:      cfg.builder,
		merger:       cfg.merger,
		resolverOpts: cfg.resolverOpts,
		metrics:      cfg.metrics,
		logger:       cfg.logger,
		specs:        make(map[string]*resolver.Spec),
		resolvers:    make(map[*resolver.Spec]*resolver.Resolver),
	}, nil
}

// Document returns the document the registry serves.
func (r *Registry) Document() *loader.Document {
	return r.doc
}

// defaultNamespace is the source path, qualified by a content checksum when
// the document was loaded from bytes, so an edited file never reads entries
// stored for its previous content.
func defaultNamespace(doc *loader.Document) string {
	if doc.Checksum == "" {
		return doc.SourcePath
	}
	sum := doc.Checksum
	if len(sum) > 16 {
		sum = sum[:16]
	}
	return doc.SourcePath + "@" + sum
}

func (r *Registry) key(kind, name string) string {
	return r.namespace + ":" + kind + ":" + name
}

// Definition returns the compiled spec of the named schema definition.
func (r *Registry) Definition(ctx context.Context, name string) (*resolver.Spec, error) {
	key := r.key(kindDefinition, schema.RefName(name))
	if spec, ok := r.cachedSpec(key); ok {
		return spec, nil
	}

	def, err := r.definition(ctx, key, kindDefinition, func() (*schema.Definition, error) {
		d, ok := r.doc.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: definition %q", ErrNotFound, name)
		}
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return r.compile(key, kindDefinition, def)
}

// Operation returns the compiled spec of the operation's merged definition.
// method is matched case-insensitively.
func (r *Registry) Operation(ctx context.Context, route, method string) (*resolver.Spec, error) {
	m, ok := httputil.NormalizeMethod(method)
	if !ok {
		return nil, &oaserrors.ConfigError{Option: "method", Value: method, Message: "unsupported HTTP method"}
	}
	// Merged definitions depend on the strategy naming their keys.
	strategy := string(r.merger.Strategy().Name())
	key := r.key(kindOperation, strategy+":"+strings.ToUpper(m)+" "+route)
	if spec, ok := r.cachedSpec(key); ok {
		return spec, nil
	}

	def, err := r.definition(ctx, key, kindOperation, func() (*schema.Definition, error) {
		op, ok := r.doc.Operation(route, m)
		if !ok {
			return nil, fmt.Errorf("%w: operation %s %s", ErrNotFound, strings.ToUpper(m), route)
		}
		return r.merger.Merge(op, r.doc)
	})
	if err != nil {
		return nil, err
	}
	return r.compile(key, kindOperation, def)
}

// ResolveDefinition resolves raw against the named definition.
func (r *Registry) ResolveDefinition(ctx context.Context, name string, raw map[string]any) (*resolver.Values, error) {
	spec, err := r.Definition(ctx, name)
	if err != nil {
		return nil, err
	}
	return r.resolve(kindDefinition, spec, raw)
}

// ResolveOperation resolves raw against the merged definition of an
// operation. Keys of raw follow the merger's naming strategy.
func (r *Registry) ResolveOperation(ctx context.Context, route, method string, raw map[string]any) (*resolver.Values, error) {
	spec, err := r.Operation(ctx, route, method)
	if err != nil {
		return nil, err
	}
	return r.resolve(kindOperation, spec, raw)
}

func (r *Registry) resolve(kind string, spec *resolver.Spec, raw map[string]any) (*resolver.Values, error) {
	res, err := r.resolverFor(spec)
	if err != nil {
		return nil, err
	}
	values, err := res.Resolve(raw)
	r.metrics.observeResolve(kind, err)
	return values, err
}

func (r *Registry) resolverFor(spec *resolver.Spec) (*resolver.Resolver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res, ok := r.resolvers[spec]; ok {
		return res, nil
	}
	res, err := resolver.New(spec, r.resolverOpts...)
	if err != nil {
		return nil, err
	}
	r.resolvers[spec] = res
	return res, nil
}

// WarmupResult reports the outcome of Warmup.
type WarmupResult struct {
	// Compiled counts definitions and operations compiled successfully
	Compiled int
	// Failed maps each definition name or "METHOD /route" to its error
	Failed map[string]error
}

// Warmup compiles every definition and operation of the document. Failures
// are collected in the result; the returned error is only set when ctx is
// done.
func (r *Registry) Warmup(ctx context.Context) (*WarmupResult, error) {
	result := &WarmupResult{Failed: make(map[string]error)}

	for _, name := range r.doc.Definitions.Names() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := r.Definition(ctx, name); err != nil {
			result.Failed[name] = err
			continue
		}
		result.Compiled++
	}

	for _, op := range r.doc.Operations {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := r.Operation(ctx, op.Route, op.Method); err != nil {
			result.Failed[strings.ToUpper(op.Method)+" "+op.Route] = err
			continue
		}
		result.Compiled++
	}

	r.logger.Info("warmup complete", "compiled", result.Compiled, "failed", len(result.Failed))
	return result, nil
}

// Reset drops the compiled specs and resolvers held in process. The store
// is left untouched.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.specs)
	clear(r.resolvers)
}

func (r *Registry) cachedSpec(key string) (*resolver.Spec, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	spec, ok := r.specs[key]
	return spec, ok
}

// definition reads the definition stored under key, or produces and stores
// it. Store failures are logged and otherwise ignored.
func (r *Registry) definition(ctx context.Context, key, kind string, produce func() (*schema.Definition, error)) (*schema.Definition, error) {
	data, ok, err := r.store.Get(ctx, key)
	switch {
	case err != nil:
		r.logger.Warn("store read failed", "key", key, "error", err)
	case ok:
		var def schema.Definition
		if err := json.Unmarshal(data, &def); err == nil {
			schemautil.RestoreLiterals(&def)
			r.metrics.observeLookup(kind, true)
			r.logger.Debug("store hit", "key", key)
			return &def, nil
		}
		r.logger.Warn("discarding undecodable stored definition", "key", key)
	}
	r.metrics.observeLookup(kind, false)

	def, err := produce()
	if err != nil {
		return nil, err
	}
	data, err = json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("registry: encoding definition: %w", err)
	}
	if err := r.store.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("store write failed", "key", key, "error", err)
	}
	return def, nil
}

func (r *Registry) compile(key, kind string, def *schema.Definition) (*resolver.Spec, error) {
	started := time.Now()
	spec, err := r.builder.Build(def)
	r.metrics.observeCompile(kind, started, err)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.specs[key]; ok {
		return existing, nil
	}
	r.specs[key] = spec
	r.logger.Debug("compiled spec", "key", key, "properties", spec.Len())
	return spec, nil
}
