package paginate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/talentdesk/applywizard/internal/directory"
	"github.com/talentdesk/applywizard/internal/logging"
)

// DefaultPageSize is the number of items requested per page.
const DefaultPageSize = 10

// PageCursor addresses the next page to fetch.
type PageCursor struct {
	Page     int
	PageSize int
}

// Skip is the item offset the cursor corresponds to.
func (c PageCursor) Skip() int {
	return c.Page * c.PageSize
}

// FetchFunc retrieves the page addressed by cursor.
type FetchFunc[T any] func(ctx context.Context, cursor PageCursor) (directory.Page[T], error)

// LoaderState is a point-in-time copy of a loader's observable state.
type LoaderState[T any] struct {
	Items     []T
	Total     int
	IsLoading bool
	HasMore   bool
}

// Ticket identifies one in-flight fetch. It is only honored by the loader
// generation that issued it.
type Ticket struct {
	Generation uint64
	Cursor     PageCursor
}

// Option configures a Loader.
type Option func(*options)

type options struct {
	name     string
	pageSize int
	timeout  time.Duration
}

// WithName labels the loader in log output (e.g. "products").
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithPageSize sets the page size. Non-positive values are ignored.
func WithPageSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.pageSize = size
		}
	}
}

// WithTimeout bounds every fetch. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// Loader accumulates pages of a remote collection on demand.
//
// At most one fetch is in flight at any time. Triggers that arrive while a
// fetch is running, after the collection is exhausted, or while the loader is
// disabled are ignored. A failed fetch leaves the accumulated items, total and
// cursor untouched; the next trigger retries the same page.
type Loader[T any] struct {
	mu    sync.Mutex
	fetch FetchFunc[T]
	opts  options

	enabled    bool
	items      []T
	total      int
	page       int
	hasMore    bool
	loading    bool
	generation uint64
	lastErr    error
}

// New creates an empty, disabled loader.
func New[T any](fetch FetchFunc[T], opts ...Option) *Loader[T] {
	o := options{name: "collection", pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader[T]{
		fetch:   fetch,
		opts:    o,
		hasMore: true,
	}
}

// Name returns the log label.
func (l *Loader[T]) Name() string {
	return l.opts.name
}

// PageSize returns the configured page size.
func (l *Loader[T]) PageSize() int {
	return l.opts.pageSize
}

// Open enables or disables the loader. Enabling a loader that holds no items
// starts the first page: the returned ticket must be passed to Fetch and then
// Complete or Fail. Disabling keeps everything loaded so far.
func (l *Loader[T]) Open(enabled bool) (Ticket, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	wasEnabled := l.enabled
	l.enabled = enabled
	if !enabled || wasEnabled || len(l.items) > 0 {
		return Ticket{}, false
	}
	return l.beginLocked()
}

// Enabled reports whether the loader accepts triggers.
func (l *Loader[T]) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// Begin claims the next page if a fetch is allowed.
func (l *Loader[T]) Begin() (Ticket, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.beginLocked()
}

func (l *Loader[T]) beginLocked() (Ticket, bool) {
	if !l.enabled || l.loading || !l.hasMore {
		return Ticket{}, false
	}
	l.loading = true
	return Ticket{
		Generation: l.generation,
		Cursor:     PageCursor{Page: l.page, PageSize: l.opts.pageSize},
	}, true
}

// Fetch runs the fetch function for t. It does not touch loader state and is
// safe to call from any goroutine.
func (l *Loader[T]) Fetch(ctx context.Context, t Ticket) (directory.Page[T], error) {
	if l.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.timeout)
		defer cancel()
	}
	return l.fetch(ctx, t.Cursor)
}

// Complete applies a fetched page. It reports false when the ticket belongs
// to a generation discarded by Reset.
func (l *Loader[T]) Complete(t Ticket, page directory.Page[T]) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.Generation != l.generation {
		return false
	}

	l.loading = false
	l.lastErr = nil
	l.items = append(l.items, page.Items...)
	l.total = page.Total
	l.page = t.Cursor.Page + 1
	// An empty page means the server overstated its total.
	l.hasMore = len(page.Items) > 0 && len(l.items) < l.total

	logging.LogPageLoaded(l.opts.name, t.Cursor.Page, len(l.items), l.total)
	return true
}

// Fail records a failed fetch. Items, total and cursor are left unchanged.
func (l *Loader[T]) Fail(t Ticket, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.Generation != l.generation {
		return false
	}

	l.loading = false
	l.lastErr = err
	logging.LogFetchFailure(l.opts.name, t.Cursor.Page, err)
	return true
}

// RequestMore synchronously fetches and applies the next page. It is a no-op
// when the loader is disabled, busy, or exhausted.
func (l *Loader[T]) RequestMore(ctx context.Context) error {
	t, ok := l.Begin()
	if !ok {
		return nil
	}
	return l.run(ctx, t)
}

// Load enables the loader and synchronously fetches the first page if
// nothing has been loaded yet.
func (l *Loader[T]) Load(ctx context.Context) error {
	t, ok := l.Open(true)
	if !ok {
		return nil
	}
	return l.run(ctx, t)
}

func (l *Loader[T]) run(ctx context.Context, t Ticket) error {
	page, err := l.Fetch(ctx, t)
	if err != nil {
		l.Fail(t, err)
		return fmt.Errorf("fetch %s page %d: %w", l.opts.name, t.Cursor.Page, err)
	}
	l.Complete(t, page)
	return nil
}

// Reset discards everything loaded and invalidates in-flight tickets.
// The enabled flag is kept.
func (l *Loader[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil
	l.total = 0
	l.page = 0
	l.hasMore = true
	l.loading = false
	l.lastErr = nil
	l.generation++
}

// State returns a snapshot; the Items slice is a copy.
func (l *Loader[T]) State() LoaderState[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]T, len(l.items))
	copy(items, l.items)
	return LoaderState[T]{
		Items:     items,
		Total:     l.total,
		IsLoading: l.loading,
		HasMore:   l.hasMore,
	}
}

// Len returns the number of accumulated items.
func (l *Loader[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Cursor returns the page the next fetch will request.
func (l *Loader[T]) Cursor() PageCursor {
	l.mu.Lock()
	defer l.mu.Unlock()
	return PageCursor{Page: l.page, PageSize: l.opts.pageSize}
}

// LastError returns the most recent fetch failure, cleared by a successful
// page or Reset.
func (l *Loader[T]) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}
