package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/schema"
)

// Version constants reported in Document.Version.
const (
	VersionOAS2 = "2.0"
)

// Document is a loaded OpenAPI document reduced to what value resolution
// needs.
type Document struct {
	// SourcePath is the file path or source name the document came from
	SourcePath string
	// Version is the value of the swagger or openapi root key
	Version string
	// Checksum is the hex sha256 of the document bytes. Empty for documents
	// built in memory.
	Checksum string
	// Definitions holds definitions (2.0) or components.schemas (3.x)
	Definitions schema.Definitions
	// Operations lists operations sorted by route, then by method
	Operations []*schema.Operation
	// Warnings lists elements skipped during conversion
	Warnings []string
}

// IsOAS2 reports whether the document is a Swagger 2.0 document.
func (d *Document) IsOAS2() bool {
	return d.Version == VersionOAS2
}

// Lookup implements schema.Lookup over the document's definitions.
func (d *Document) Lookup(ref string) (*schema.Definition, bool) {
	return d.Definitions.Lookup(ref)
}

// Operation returns the operation declared for route and method. The method
// is matched case-insensitively.
func (d *Document) Operation(route, method string) (*schema.Operation, bool) {
	for _, op := range d.Operations {
		if op.Route == route && strings.EqualFold(op.Method, method) {
			return op, true
		}
	}
	return nil, false
}

// OperationByID returns the operation with the given operationId.
func (d *Document) OperationByID(id string) (*schema.Operation, bool) {
	if id == "" {
		return nil, false
	}
	for _, op := range d.Operations {
		if op.ID == id {
			return op, true
		}
	}
	return nil, false
}

var _ schema.Lookup = (*Document)(nil)

// LoadWithOptions loads an OpenAPI document using functional options.
//
// Example:
//
//	doc, err := loader.LoadWithOptions(
//		loader.WithFilePath("swagger.yaml"),
//		loader.WithLogger(logger),
//	)
func LoadWithOptions(opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("loader: invalid options: %w", err)
	}

	source := cfg.source()
	data, err := cfg.read()
	if err != nil {
		return nil, &oaserrors.LoadError{Path: source, Message: "reading document", Cause: err}
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &oaserrors.LoadError{Path: source, Message: "decoding document", Cause: err}
	}
	root, ok := normalizeYAML(raw).(map[string]any)
	if !ok {
		return nil, &oaserrors.LoadError{Path: source, Message: "document root must be a mapping"}
	}

	version, err := detectVersion(root)
	if err != nil {
		return nil, &oaserrors.LoadError{Path: source, Message: err.Error()}
	}

	var doc *Document
	switch {
	case version == VersionOAS2:
		doc, err = loadOAS2(root)
	case strings.HasPrefix(version, "3."):
		doc, err = loadOAS3(data, cfg)
	default:
		return nil, &oaserrors.LoadError{
			Path:    source,
			Message: fmt.Sprintf("unsupported OpenAPI version %q", version),
		}
	}
	if err != nil {
		return nil, &oaserrors.LoadError{Path: source, Message: "converting document", Cause: err}
	}

	doc.SourcePath = source
	doc.Version = version
	sum := sha256.Sum256(data)
	doc.Checksum = hex.EncodeToString(sum[:])
	for _, w := range doc.Warnings {
		cfg.logger.Warn("conversion warning", "source", source, "warning", w)
	}
	cfg.logger.Debug("loaded document",
		"source", source,
		"version", version,
		"definitions", len(doc.Definitions),
		"operations", len(doc.Operations))
	return doc, nil
}

func (cfg *loadConfig) read() ([]byte, error) {
	switch {
	case cfg.filePath != nil:
		return os.ReadFile(*cfg.filePath)
	case cfg.reader != nil:
		return io.ReadAll(cfg.reader)
	}
	return cfg.bytes, nil
}

// detectVersion determines the OAS version from the raw data
func detectVersion(data map[string]any) (string, error) {
	if swagger, ok := data["swagger"].(string); ok {
		return swagger, nil
	}
	if openapi, ok := data["openapi"].(string); ok {
		return openapi, nil
	}
	return "", fmt.Errorf("unable to detect OpenAPI version: document must contain either 'swagger: \"2.0\"' (for OAS 2.0) or 'openapi: \"3.x.x\"' (for OAS 3.x) at the root level")
}

// normalizeYAML rewrites decoded YAML so it can be re-encoded as JSON:
// mapping keys become strings (a bare 200 response code is an int in YAML).
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []any:
		for i := range t {
			t[i] = normalizeYAML(t[i])
		}
		return t
	}
	return v
}
