package feed

import (
	"context"

	qs "github.com/google/go-querystring/query"

	"github.com/orgbase/orgcore/fault"
	"github.com/orgbase/orgcore/object"
	"github.com/orgbase/orgcore/query"
	"github.com/orgbase/orgcore/schema"
	"github.com/orgbase/orgcore/transport"
)

// ListOptions are the plain scalar options accepted by the feed list
// calls. They encode straight onto the query string.
type ListOptions struct {
	Limit    int  `url:"limit,omitempty"`
	Skip     int  `url:"skip,omitempty"`
	Unviewed bool `url:"unviewed,omitempty"`
}

func (o *ListOptions) parameters() (*query.Parameters, *fault.Fault) {
	if o == nil {
		return nil, nil
	}
	values, err := qs.Values(o)
	if err != nil {
		return nil, fault.FromError(err)
	}
	m := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			m[k] = vs[0]
		}
	}
	return query.WithCustom(m), nil
}

// Service lists the collaboration feed of context objects: posts, their
// comments, and connections.
//
// Deprecated: the feed subsystem is retained for older orgs only; new
// applications should model collaboration with custom objects.
type Service struct {
	fetcher transport.Fetcher
	reg     *schema.Registry
}

// NewService creates a feed service over the given fetcher.
func NewService(fetcher transport.Fetcher, reg *schema.Registry) *Service {
	return &Service{fetcher: fetcher, reg: reg}
}

// ListPosts lists the feed posts of one context object.
func (s *Service) ListPosts(ctx context.Context, contextName, objectID string, opts *ListOptions) ([]*object.Instance, *fault.Fault) {
	return s.list(ctx, transport.Target{Context: contextName, ObjectID: objectID, ListProperty: "feed"}, opts)
}

// ListComments lists the comments of one post.
func (s *Service) ListComments(ctx context.Context, postID string, opts *ListOptions) ([]*object.Instance, *fault.Fault) {
	return s.list(ctx, transport.Target{Context: "posts", ObjectID: postID, ListProperty: "comments"}, opts)
}

// ListConnections lists the connections of one context object.
func (s *Service) ListConnections(ctx context.Context, contextName, objectID string, opts *ListOptions) ([]*object.Instance, *fault.Fault) {
	return s.list(ctx, transport.Target{Context: contextName, ObjectID: objectID, ListProperty: "connections"}, opts)
}

func (s *Service) list(ctx context.Context, target transport.Target, opts *ListOptions) ([]*object.Instance, *fault.Fault) {
	params, flt := opts.parameters()
	if flt != nil {
		return nil, flt
	}
	page, err := s.fetcher.Fetch(ctx, target, params)
	if err != nil {
		return nil, fault.FromError(err)
	}
	return object.NewInstances(page.Items, s.reg)
}
