package schema

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/orgbase/orgcore/fault"
	"github.com/orgbase/orgcore/query"
	"github.com/orgbase/orgcore/transport"
)

func schemaPayload() []map[string]any {
	return []map[string]any{
		{
			"_id":  "5f0000000000000000000300",
			"name": "account",
			"properties": []any{
				map[string]any{"name": "name", "type": "String"},
			},
		},
		{
			"_id":  "5f0000000000000000000301",
			"name": "c_study",
		},
	}
}

func TestLookupsBeforeLoad(t *testing.T) {
	reg := NewRegistry(transport.FetcherFunc(nil))
	if _, ok := reg.ObjectByName("account"); ok {
		t.Error("lookup before load should report absence")
	}
	if _, ok := reg.ObjectByID("5f0000000000000000000300"); ok {
		t.Error("lookup before load should report absence")
	}
	if defs := reg.Definitions(); defs != nil {
		t.Errorf("Definitions before load = %v", defs)
	}
}

func TestLoadAndLookup(t *testing.T) {
	reg := NewRegistry(transport.FetcherFunc(func(ctx context.Context, target transport.Target, params *query.Parameters) (*transport.Page, error) {
		return &transport.Page{Items: schemaPayload()}, nil
	}))

	done := make(chan struct{})
	reg.Load(context.Background(), func(defs []*ObjectDefinition, flt *fault.Fault) {
		if flt != nil {
			t.Errorf("load fault: %v", flt)
		}
		if len(defs) != 2 {
			t.Errorf("loaded %d definitions, want 2", len(defs))
		}
		close(done)
	})
	<-done

	if _, ok := reg.ObjectByName("account"); !ok {
		t.Error("account not found by singular name")
	}
	if _, ok := reg.ObjectByName("c_studies"); !ok {
		t.Error("c_study not found by plural name")
	}
	if _, ok := reg.ObjectByID("5f0000000000000000000301"); !ok {
		t.Error("c_study not found by id")
	}
	if _, ok := reg.ObjectByName("nothing"); ok {
		t.Error("unknown name should report absence")
	}
}

func TestConcurrentLoadsCoalesce(t *testing.T) {
	var fetches atomic.Int32
	release := make(chan struct{})
	reg := NewRegistry(transport.FetcherFunc(func(ctx context.Context, target transport.Target, params *query.Parameters) (*transport.Page, error) {
		fetches.Add(1)
		<-release
		return &transport.Page{Items: schemaPayload()}, nil
	}))

	const callers = 5
	var wg sync.WaitGroup
	wg.Add(callers)
	for range callers {
		reg.Load(context.Background(), func(defs []*ObjectDefinition, flt *fault.Fault) {
			wg.Done()
		})
	}
	close(release)
	wg.Wait()

	if got := fetches.Load(); got != 1 {
		t.Errorf("%d fetches for %d concurrent loads, want 1", got, callers)
	}
}

func TestLoadFaultLeavesSnapshot(t *testing.T) {
	calls := 0
	reg := NewRegistry(transport.FetcherFunc(func(ctx context.Context, target transport.Target, params *query.Parameters) (*transport.Page, error) {
		calls++
		if calls > 1 {
			return nil, fault.New(fault.CodeRequestFailed, "backend down")
		}
		return &transport.Page{Items: schemaPayload()}, nil
	}))

	done := make(chan struct{})
	reg.Load(context.Background(), func([]*ObjectDefinition, *fault.Fault) { close(done) })
	<-done

	failed := make(chan *fault.Fault, 1)
	reg.Load(context.Background(), func(defs []*ObjectDefinition, flt *fault.Fault) { failed <- flt })
	if flt := <-failed; flt == nil {
		t.Fatal("expected fault from second load")
	}
	// The previous snapshot stays published.
	if _, ok := reg.ObjectByName("account"); !ok {
		t.Error("failed reload must not clear the last good snapshot")
	}
}
