package feed

import (
	"context"
	"testing"

	"github.com/orgbase/orgcore/fault"
	"github.com/orgbase/orgcore/query"
	"github.com/orgbase/orgcore/schema"
	"github.com/orgbase/orgcore/transport"
)

func feedSchemas() []map[string]any {
	return []map[string]any{
		{
			"_id":  "5f0000000000000000000300",
			"name": "post",
			"properties": []any{
				map[string]any{"name": "body", "type": "String"},
			},
		},
		{
			"_id":  "5f0000000000000000000301",
			"name": "comment",
			"properties": []any{
				map[string]any{"name": "body", "type": "String"},
			},
		},
	}
}

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	fetcher := transport.FetcherFunc(func(ctx context.Context, target transport.Target, params *query.Parameters) (*transport.Page, error) {
		return &transport.Page{Items: feedSchemas()}, nil
	})
	reg := schema.NewRegistry(fetcher)
	done := make(chan struct{})
	reg.Load(context.Background(), func(defs []*schema.ObjectDefinition, flt *fault.Fault) {
		close(done)
	})
	<-done
	return reg
}

type recordingFetcher struct {
	path  string
	query string
	items []map[string]any
}

func (f *recordingFetcher) Fetch(ctx context.Context, target transport.Target, params *query.Parameters) (*transport.Page, error) {
	f.path = target.RoutePath()
	f.query = params.String()
	return &transport.Page{Items: f.items}, nil
}

func TestListPosts(t *testing.T) {
	f := &recordingFetcher{items: []map[string]any{
		{"object": "post", "body": "hello"},
		{"object": "post", "body": "again"},
	}}
	s := NewService(f, testRegistry(t))

	posts, flt := s.ListPosts(context.Background(), "c_studies", "abc", &ListOptions{Limit: 5, Unviewed: true})
	if flt != nil {
		t.Fatalf("ListPosts: %v", flt)
	}
	if f.path != "c_studies/abc/feed" {
		t.Errorf("path = %q", f.path)
	}
	if f.query != "limit=5&unviewed=true" {
		t.Errorf("query = %q", f.query)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %d", len(posts))
	}
	if body, ok := posts[0].StringValue("body"); !ok || body != "hello" {
		t.Errorf("post body = %q, %v", body, ok)
	}
}

func TestListComments(t *testing.T) {
	f := &recordingFetcher{items: []map[string]any{
		{"object": "comment", "body": "nice"},
	}}
	s := NewService(f, testRegistry(t))

	comments, flt := s.ListComments(context.Background(), "post-1", nil)
	if flt != nil {
		t.Fatalf("ListComments: %v", flt)
	}
	if f.path != "posts/post-1/comments" {
		t.Errorf("path = %q", f.path)
	}
	if f.query != "" {
		t.Errorf("query = %q, want empty for nil options", f.query)
	}
	if len(comments) != 1 {
		t.Errorf("comments = %d", len(comments))
	}
}

func TestListUnresolvedSchemaFails(t *testing.T) {
	f := &recordingFetcher{items: []map[string]any{
		{"object": "c_mystery", "body": "?"},
	}}
	s := NewService(f, testRegistry(t))

	if _, flt := s.ListConnections(context.Background(), "c_studies", "abc", nil); flt == nil {
		t.Error("unresolved item schema did not fail the listing")
	}
}
