package paging

import (
	"context"
	"sync"

	"github.com/orgbase/orgcore/fault"
	"github.com/orgbase/orgcore/schema"
	"github.com/orgbase/orgcore/transport"
	"github.com/orgbase/orgcore/util"
)

// Manager is a registry of named paginators sharing one fetcher and
// schema registry. Identifiers are unique; construction and registration
// are atomic so two callers can never race the same identifier into two
// paginators. Removing a paginator only unregisters it; the caller owns
// its lifetime from then on.
type Manager struct {
	fetcher transport.Fetcher
	reg     *schema.Registry

	mu         sync.Mutex
	paginators map[string]*Paginator
}

// NewManager creates an empty paginator registry.
func NewManager(fetcher transport.Fetcher, reg *schema.Registry) *Manager {
	return &Manager{
		fetcher:    fetcher,
		reg:        reg,
		paginators: make(map[string]*Paginator),
	}
}

// RandomID returns an identifier suitable for a paginator.
func RandomID() string {
	return util.NanoID()
}

// NewPaginatorWithIdentifier constructs a paginator and registers it
// under opts.Identifier in one step. Returns nil and a fault if the
// identifier is empty, already registered, or the options are invalid; a
// failed construction registers nothing.
func (m *Manager) NewPaginatorWithIdentifier(ctx context.Context, opts Options) (*Paginator, *fault.Fault) {
	if opts.Identifier == "" {
		return nil, fault.InvalidArgument("paging: empty identifier")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.paginators[opts.Identifier]; exists {
		return nil, fault.Newf(fault.CodeInvalidArgument, "paging: identifier %q already registered", opts.Identifier)
	}
	p, flt := New(ctx, m.fetcher, m.reg, opts)
	if flt != nil {
		return nil, flt
	}
	m.paginators[opts.Identifier] = p
	return p, nil
}

// Add registers an existing paginator under its identifier. Returns false
// for paginators without an identifier or when the identifier is taken.
func (m *Manager) Add(p *Paginator) bool {
	if p == nil || p.Identifier() == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.paginators[p.Identifier()]; exists {
		return false
	}
	m.paginators[p.Identifier()] = p
	return true
}

// Get looks up a registered paginator.
func (m *Manager) Get(identifier string) (*Paginator, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.paginators[identifier]
	return p, ok
}

// Paginators returns all registered paginators.
func (m *Manager) Paginators() []*Paginator {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Paginator, 0, len(m.paginators))
	for _, p := range m.paginators {
		out = append(out, p)
	}
	return out
}

// Remove unregisters a paginator without destroying it.
func (m *Manager) Remove(identifier string) (*Paginator, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.paginators[identifier]
	if ok {
		delete(m.paginators, identifier)
	}
	return p, ok
}

// RemoveAll unregisters every paginator without destroying them.
func (m *Manager) RemoveAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paginators = make(map[string]*Paginator)
}
