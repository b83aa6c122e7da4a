package schema

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/orgbase/orgcore/fault"
	"github.com/orgbase/orgcore/transport"
)

// LoadCallback receives the loaded definition set, or a fault.
type LoadCallback func(defs []*ObjectDefinition, flt *fault.Fault)

// snapshot is one immutable, fully-indexed schema set. Lookups run against
// the last published snapshot and never observe a partial update.
type snapshot struct {
	defs     []*ObjectDefinition
	byID     map[string]*ObjectDefinition
	byName   map[string]*ObjectDefinition
	byPlural map[string]*ObjectDefinition
}

// Registry caches the object definitions of an org. It is the source of
// truth for what shape a given context has.
//
// Loads are coalesced: concurrent Load calls while a fetch is in flight
// attach to the outstanding fetch instead of issuing duplicates. Lookups
// are synchronous and lock-free against the last loaded snapshot.
type Registry struct {
	fetcher transport.Fetcher
	current atomic.Pointer[snapshot]

	mu      sync.Mutex
	loading bool
	pending []LoadCallback
}

// NewRegistry creates a schema registry backed by the given fetcher.
func NewRegistry(fetcher transport.Fetcher) *Registry {
	return &Registry{fetcher: fetcher}
}

// Definitions returns the definitions of the last loaded snapshot, or nil
// if no load has succeeded yet.
func (r *Registry) Definitions() []*ObjectDefinition {
	if s := r.current.Load(); s != nil {
		return s.defs
	}
	return nil
}

// ObjectByID returns the definition with the given id. Never blocks;
// reports absence when unloaded or unknown.
func (r *Registry) ObjectByID(id string) (*ObjectDefinition, bool) {
	s := r.current.Load()
	if s == nil {
		return nil, false
	}
	d, ok := s.byID[id]
	return d, ok
}

// ObjectByName returns the definition whose singular or plural name matches.
// Never blocks; reports absence when unloaded or unknown.
func (r *Registry) ObjectByName(name string) (*ObjectDefinition, bool) {
	s := r.current.Load()
	if s == nil {
		return nil, false
	}
	if d, ok := s.byName[name]; ok {
		return d, true
	}
	d, ok := s.byPlural[name]
	return d, ok
}

// Load fetches the full schema set and replaces the snapshot wholesale.
// Whether a reload is due (e.g. on an ETag change) is the caller's call;
// the registry only swaps in the new set atomically.
func (r *Registry) Load(ctx context.Context, cb LoadCallback) {
	r.mu.Lock()
	if cb != nil {
		r.pending = append(r.pending, cb)
	}
	if r.loading {
		r.mu.Unlock()
		return
	}
	r.loading = true
	r.mu.Unlock()

	go r.fetch(ctx)
}

func (r *Registry) fetch(ctx context.Context) {
	page, err := r.fetcher.Fetch(ctx, transport.Target{Path: "schemas"}, nil)

	var defs []*ObjectDefinition
	var flt *fault.Fault
	if err != nil {
		flt = fault.FromError(err)
	} else {
		defs = make([]*ObjectDefinition, 0, len(page.Items))
		for _, attrs := range page.Items {
			defs = append(defs, DefinitionFromAttributes(attrs))
		}
		r.publish(defs)
	}

	r.mu.Lock()
	callbacks := r.pending
	r.pending = nil
	r.loading = false
	r.mu.Unlock()

	for _, cb := range callbacks {
		cb(defs, flt)
	}
}

func (r *Registry) publish(defs []*ObjectDefinition) {
	s := &snapshot{
		defs:     defs,
		byID:     make(map[string]*ObjectDefinition, len(defs)),
		byName:   make(map[string]*ObjectDefinition, len(defs)),
		byPlural: make(map[string]*ObjectDefinition, len(defs)),
	}
	for _, d := range defs {
		if d.ID != "" {
			s.byID[d.ID] = d
		}
		s.byName[d.Name] = d
		s.byPlural[d.PluralName] = d
	}
	r.current.Store(s)
}
