package httpresolver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/erraggy/oasresolver/merger"
	"github.com/erraggy/oasresolver/oaserrors"
	"github.com/erraggy/oasresolver/oaslog"
	"github.com/erraggy/oasresolver/resolver"
	"github.com/erraggy/oasresolver/schema"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInvalidBody indicates a request body that could not be decoded.
	ErrInvalidBody = errors.New("httpresolver: invalid request body")

	// ErrUnsupportedMediaType indicates a body that is neither JSON nor
	// form-encoded.
	ErrUnsupportedMediaType = errors.New("httpresolver: unsupported media type")
)

const mediaTypeForm = "application/x-www-form-urlencoded"

// Binder extracts raw operation values from HTTP requests. It is safe for
// concurrent use.
type Binder struct {
	lookup      schema.Lookup
	strategy    merger.Strategy
	maxBodySize int64
	logger      oaslog.Logger
}

// NewBinder creates a Binder. lookup resolves request body references; it
// may be nil when no operation has a referenced body.
func NewBinder(lookup schema.Lookup, opts ...Option) (*Binder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return &Binder{
		lookup:      lookup,
		strategy:    cfg.strategy,
		maxBodySize: cfg.maxBodySize,
		logger:      cfg.logger,
	}, nil
}

// Bind returns the raw values of op found in req. Parameters are visited in
// declaration order and body properties last, so a later value under the
// same key wins, as in the merger. Absent values are left out.
func (b *Binder) Bind(req *http.Request, op *schema.Operation, pathParams map[string]string) (map[string]any, error) {
	if req == nil || op == nil {
		return nil, &oaserrors.ConfigError{Option: "request", Message: "request and operation are required"}
	}
	raw := make(map[string]any)

	query := req.URL.Query()
	for _, p := range op.Parameters {
		if p == nil {
			continue
		}
		var (
			value any
			ok    bool
		)
		switch p.Location {
		case schema.LocationPath:
			value, ok = pathParams[p.Name]
		case schema.LocationQuery:
			value, ok = queryValue(query, p)
		case schema.LocationHeader:
			value, ok = joinValues(req.Header.Values(p.Name), p)
		case schema.LocationCookie:
			if c, err := req.Cookie(p.Name); err == nil {
				value, ok = c.Value, true
			}
		}
		if ok {
			raw[b.strategy.Key(p.Location, p.Name)] = value
		}
	}

	if op.RequestBody != nil {
		if err := b.bindBody(req, op, raw); err != nil {
			return nil, err
		}
	}

	b.logger.Debug("bound request", "operation", merger.OperationName(op), "keys", len(raw))
	return raw, nil
}

// Resolve binds req and resolves the raw values with res.
func (b *Binder) Resolve(req *http.Request, op *schema.Operation, pathParams map[string]string, res *resolver.Resolver) (*resolver.Values, error) {
	raw, err := b.Bind(req, op, pathParams)
	if err != nil {
		return nil, err
	}
	return res.Resolve(raw)
}

// queryValue returns the query value of p. Arrays with a collection format
// arrive as one delimited string.
func queryValue(query url.Values, p *schema.Property) (any, bool) {
	values, ok := query[p.Name]
	if !ok || len(values) == 0 {
		return nil, false
	}
	if p.CollectionFormat == schema.CollectionMulti {
		pairs := make([]string, len(values))
		for i, v := range values {
			pairs[i] = p.Name + "=" + v
		}
		return strings.Join(pairs, schema.CollectionMulti.Delimiter()), true
	}
	return joinValues(values, p)
}

// joinValues joins repeated values of a collection parameter with its
// delimiter. Other parameters take the first value.
func joinValues(values []string, p *schema.Property) (any, bool) {
	if len(values) == 0 {
		return nil, false
	}
	if p.IsCollection() && len(values) > 1 {
		return strings.Join(values, p.CollectionFormat.Delimiter()), true
	}
	return values[0], true
}

func (b *Binder) bodyDefinition(op *schema.Operation) (*schema.Definition, error) {
	body := op.RequestBody
	if body.Inline != nil {
		return body.Inline, nil
	}
	if body.Ref == "" {
		return nil, nil
	}
	if b.lookup != nil {
		if def, ok := b.lookup.Lookup(body.Ref); ok {
			return def, nil
		}
	}
	return nil, &oaserrors.ReferenceError{
		Ref:       body.Ref,
		Operation: merger.OperationName(op),
		Message:   "definition not found",
	}
}

func (b *Binder) bindBody(req *http.Request, op *schema.Operation, raw map[string]any) error {
	def, err := b.bodyDefinition(op)
	if err != nil || def == nil {
		return err
	}
	if req.Body == nil || req.Body == http.NoBody || req.ContentLength == 0 {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(req.Body, b.maxBodySize+1))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if int64(len(data)) > b.maxBodySize {
		return fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidBody, b.maxBodySize)
	}
	req.Body = io.NopCloser(bytes.NewReader(data))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	fields, err := DecodeBody(req.Header.Get("Content-Type"), data)
	if err != nil {
		return err
	}
	for _, p := range def.Properties {
		if value, ok := fields[p.Name]; ok {
			raw[b.strategy.Key(schema.LocationBody, p.Name)] = value
		}
	}
	return nil
}

// DecodeBody decodes a JSON object or a form-encoded body into fields. An
// empty content type is read as JSON. JSON numbers become int64 when
// integral and float64 otherwise.
func DecodeBody(contentType string, data []byte) (map[string]any, error) {
	mediaType := "application/json"
	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
		}
		mediaType = mt
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var decoded any
		if err := dec.Decode(&decoded); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		obj, ok := numbers(decoded).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidBody)
		}
		return obj, nil
	case mediaType == mediaTypeForm:
		form, err := url.ParseQuery(string(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		fields := make(map[string]any, len(form))
		for k, v := range form {
			if len(v) == 1 {
				fields[k] = v[0]
				continue
			}
			items := make([]any, len(v))
			for i, s := range v {
				items[i] = s
			}
			fields[k] = items
		}
		return fields, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
}

// numbers replaces json.Number values with int64 when integral and float64
// otherwise.
func numbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, val := range t {
			t[k] = numbers(val)
		}
		return t
	case []any:
		for i := range t {
			t[i] = numbers(t[i])
		}
		return t
	}
	return v
}
