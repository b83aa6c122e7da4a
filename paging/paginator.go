package paging

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/orgbase/orgcore/fault"
	"github.com/orgbase/orgcore/object"
	"github.com/orgbase/orgcore/query"
	"github.com/orgbase/orgcore/schema"
	"github.com/orgbase/orgcore/transport"
)

// DefaultPagingField is the cursor key used when none is configured.
const DefaultPagingField = "_id"

var validate = validator.New()

// State is a paginator lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateLoadingNextPage
	StateLoadingAllPages
	StateDestroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingNextPage:
		return "loadingNextPage"
	case StateLoadingAllPages:
		return "loadingAllPages"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// PageCallback receives one fetched page. A non-nil flt means the fetch
// failed and items is empty; hasMore reports whether another page may
// exist.
type PageCallback func(items []*object.Instance, hasMore bool, flt *fault.Fault)

// AllPagesCallback receives the concatenation of all pages fetched by
// LoadAllPages, delivered exactly once.
type AllPagesCallback func(items []*object.Instance, flt *fault.Fault)

// Options configures a Paginator.
type Options struct {
	// Identifier names the paginator within a Manager. Optional for
	// stand-alone paginators.
	Identifier string
	// Target addresses the context, nested list property, or raw path
	// to page over.
	Target transport.Target
	// PagingField is the cursor key. Defaults to the identity field.
	PagingField string
	// PageSize is the per-fetch limit.
	PageSize int `validate:"min=1,max=100"`
	// InverseOrder pages in descending paging-field order.
	InverseOrder bool
	// CacheResults retains every fetched page in fetch order.
	CacheResults bool
	// Parameters are merged into every request.
	Parameters *query.Parameters
	// OnPage receives each fetched page.
	OnPage PageCallback
	// OnAllPages, when set, is the only sink LoadAllPages reports
	// through.
	OnAllPages AllPagesCallback
}

type opKind int

const (
	opNextPage opKind = iota
	opAllPages
	opReset
)

// Paginator pages over one target, keeping the cursor, the optional
// result cache, and a FIFO queue of operations issued while a fetch is in
// flight. All operations return immediately; results arrive on the
// configured callbacks. Operations on a destroyed paginator are no-ops.
type Paginator struct {
	id          string
	target      transport.Target
	pagingField string
	pageSize    int
	inverse     bool
	cacheOn     bool
	params      *query.Parameters
	fetcher     transport.Fetcher
	reg         *schema.Registry
	ctx         context.Context

	mu             sync.Mutex
	state          State
	cursor         any
	cached         []*object.Instance
	seen           map[string]struct{}
	queue          []opKind
	destroyPending bool
	onPage         PageCallback
	onAllPages     AllPagesCallback
}

// New creates a stand-alone paginator. The context bounds all fetches the
// paginator ever issues.
func New(ctx context.Context, fetcher transport.Fetcher, reg *schema.Registry, opts Options) (*Paginator, *fault.Fault) {
	if fetcher == nil {
		return nil, fault.InvalidArgument("paging: nil fetcher")
	}
	if opts.Target.RoutePath() == "" {
		return nil, fault.InvalidArgument("paging: empty target")
	}
	if err := validate.Struct(opts); err != nil {
		return nil, fault.Newf(fault.CodeInvalidArgument, "paging: %v", err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.PagingField == "" {
		opts.PagingField = DefaultPagingField
	}
	return &Paginator{
		id:          opts.Identifier,
		target:      opts.Target,
		pagingField: opts.PagingField,
		pageSize:    opts.PageSize,
		inverse:     opts.InverseOrder,
		cacheOn:     opts.CacheResults,
		params:      opts.Parameters,
		fetcher:     fetcher,
		reg:         reg,
		ctx:         ctx,
		seen:        map[string]struct{}{},
		onPage:      opts.OnPage,
		onAllPages:  opts.OnAllPages,
	}, nil
}

// Identifier returns the paginator's identifier, if any.
func (p *Paginator) Identifier() string { return p.id }

// CurrentState returns the lifecycle state.
func (p *Paginator) CurrentState() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// CachedResults returns a copy of the accumulated results, in fetch
// order. Empty unless CacheResults was enabled.
func (p *Paginator) CachedResults() []*object.Instance {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*object.Instance(nil), p.cached...)
}

// LoadNextPage fetches the page after the current cursor. Queued if a
// fetch is in flight.
func (p *Paginator) LoadNextPage() {
	p.start(opNextPage)
}

// LoadAllPages repeatedly fetches pages from the current cursor until the
// backend reports no more results. Any pre-existing cache is cleared
// before the first fetch. When an OnAllPages callback is configured it
// receives the concatenated results exactly once; otherwise each page is
// delivered through OnPage.
func (p *Paginator) LoadAllPages() {
	p.start(opAllPages)
}

// ResetPagination clears the cursor and the cached results without
// fetching. Queued if a fetch is in flight.
func (p *Paginator) ResetPagination() {
	p.start(opReset)
}

// Destroy tears the paginator down. With a fetch in flight the teardown
// is deferred until the fetch lands and its result is discarded.
// Destruction is irreversible; every later operation is a no-op.
func (p *Paginator) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case StateDestroyed:
	case StateIdle:
		p.teardownLocked()
	default:
		p.destroyPending = true
	}
}

func (p *Paginator) start(op opKind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case StateDestroyed:
		return
	case StateIdle:
		p.launchLocked(op)
	default:
		p.queue = append(p.queue, op)
	}
}

// launchLocked begins one operation. Reset runs inline; the load
// operations move to their loading state and fetch on a fresh goroutine.
func (p *Paginator) launchLocked(op opKind) {
	switch op {
	case opReset:
		p.cursor = nil
		p.clearCacheLocked()
	case opNextPage:
		p.state = StateLoadingNextPage
		go p.runNextPage()
	case opAllPages:
		p.state = StateLoadingAllPages
		p.clearCacheLocked()
		go p.runAllPages()
	}
}

func (p *Paginator) clearCacheLocked() {
	p.cached = nil
	p.seen = map[string]struct{}{}
}

func (p *Paginator) teardownLocked() {
	p.state = StateDestroyed
	p.destroyPending = false
	p.cursor = nil
	p.queue = nil
	p.onPage = nil
	p.onAllPages = nil
	p.clearCacheLocked()
}

// settle runs after an operation's last fetch has landed and its results
// have been delivered: either the deferred destroy fires or the queue is
// replayed in FIFO order until an operation fetches again.
func (p *Paginator) settle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateDestroyed {
		return
	}
	if p.destroyPending {
		p.teardownLocked()
		return
	}
	p.state = StateIdle
	for len(p.queue) > 0 {
		op := p.queue[0]
		p.queue = p.queue[1:]
		p.launchLocked(op)
		if p.state != StateIdle {
			return
		}
	}
}

func (p *Paginator) runNextPage() {
	items, hasMore, flt := p.fetchPage()
	p.mu.Lock()
	cb := p.onPage
	suppress := p.destroyPending
	p.mu.Unlock()
	if !suppress && cb != nil {
		cb(items, hasMore, flt)
	}
	p.settle()
}

func (p *Paginator) runAllPages() {
	var all []*object.Instance
	p.mu.Lock()
	aggregated := p.onAllPages != nil
	p.mu.Unlock()

	for {
		items, hasMore, flt := p.fetchPage()

		p.mu.Lock()
		onPage, onAll := p.onPage, p.onAllPages
		suppress := p.destroyPending
		p.mu.Unlock()
		if suppress {
			break
		}

		if flt != nil {
			if aggregated {
				if onAll != nil {
					onAll(nil, flt)
				}
			} else if onPage != nil {
				onPage(nil, hasMore, flt)
			}
			break
		}

		if aggregated {
			all = append(all, items...)
		} else if onPage != nil {
			onPage(items, hasMore, nil)
		}
		if !hasMore {
			if aggregated && onAll != nil {
				onAll(all, nil)
			}
			break
		}
	}
	p.settle()
}

// fetchPage issues one fetch from the current cursor and absorbs the
// outcome: on success the cursor advances to the last item's paging-field
// value and the page joins the cache; on fault nothing changes and the
// same page is re-requested by the next load.
func (p *Paginator) fetchPage() ([]*object.Instance, bool, *fault.Fault) {
	page, err := p.fetcher.Fetch(p.ctx, p.target, p.pageParameters())
	if err != nil {
		return nil, true, fault.FromError(err)
	}
	items, flt := object.NewInstances(page.Items, p.reg)
	if flt != nil {
		return nil, true, flt
	}

	last := len(page.Items) < p.pageSize
	if page.HasMore != nil && !*page.HasMore {
		last = true
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(page.Items); n > 0 {
		if v, ok := page.Items[n-1][p.pagingField]; ok {
			p.cursor = v
		}
	}
	if p.cacheOn {
		for i, raw := range page.Items {
			// Items without the paging field cannot collide on it;
			// cache them without a dedup entry.
			if v, ok := raw[p.pagingField]; ok {
				key := fmt.Sprint(v)
				if _, dup := p.seen[key]; dup {
					continue
				}
				p.seen[key] = struct{}{}
			}
			p.cached = append(p.cached, items[i])
		}
	}
	return items, !last, nil
}

// pageParameters builds the request: the caller's parameters, the cursor
// filter, the paging-field sort, and the page-size limit. The paginator's
// own fragments are never prefix-pathed: the route already addresses the
// list, even for a nested list property. Prefix paths are for caller
// parameters targeting embedded lists of the fetched objects.
func (p *Paginator) pageParameters() *query.Parameters {
	p.mu.Lock()
	cursor := p.cursor
	p.mu.Unlock()

	params := query.Combine(
		p.params,
		query.WithOrderedSort([]query.SortField{{Name: p.pagingField, Descending: p.inverse}}, ""),
		query.WithLimit(p.pageSize, ""),
	)
	if cursor != nil {
		if p.inverse {
			params = params.Add(query.WhereLessThan(p.pagingField, cursor, ""))
		} else {
			params = params.Add(query.WhereGreaterThan(p.pagingField, cursor, ""))
		}
	}
	return params
}
