package transport

import (
	"context"
	"strings"

	"github.com/orgbase/orgcore/query"
)

// Target describes what a fetch addresses: a context collection, a list
// property inside one object of a context, or a raw path.
type Target struct {
	// Context is the plural context name, e.g. "accounts" or "c_things".
	Context string
	// ObjectID narrows the target to one object of the context.
	ObjectID string
	// ListProperty names a list property of that object.
	ListProperty string
	// Path is a raw route path. When set it wins over the other fields.
	// No trailing slash; object ids may appear inside, e.g.
	// "c_studies/5f../c_participants".
	Path string
}

// RoutePath returns the request path for this target.
func (t Target) RoutePath() string {
	if t.Path != "" {
		return strings.Trim(t.Path, "/")
	}
	parts := []string{t.Context}
	if t.ObjectID != "" {
		parts = append(parts, t.ObjectID)
		if t.ListProperty != "" {
			parts = append(parts, t.ListProperty)
		}
	}
	return strings.Join(parts, "/")
}

// PrefixPath returns the dot path prefix for query fragments targeting a
// nested list property, or "" for plain context targets.
func (t Target) PrefixPath() string {
	if t.Path == "" && t.ListProperty != "" {
		return t.ListProperty
	}
	return ""
}

// Page is one fetched page of raw attribute mappings. HasMore is nil when
// the backend gave no explicit signal.
type Page struct {
	Items   []map[string]any
	HasMore *bool
}

// Fetcher is the collaborator the core hands its query parameters and
// target descriptors to. Implementations own URLs, headers and auth.
type Fetcher interface {
	Fetch(ctx context.Context, target Target, params *query.Parameters) (*Page, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, target Target, params *query.Parameters) (*Page, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, target Target, params *query.Parameters) (*Page, error) {
	return f(ctx, target, params)
}
