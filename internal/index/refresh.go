package index

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/roach88/launchcore/internal/apps"
)

// ErrSuperseded is reported by a refresh that was overtaken by a later one.
var ErrSuperseded = errors.New("refresh superseded")

// TicketSource generates refresh tickets.
type TicketSource interface {
	Generate() string
}

// UUIDv7Tickets generates time-sortable UUIDv7 refresh tickets.
//
// Thread-safety: UUIDv7Tickets is stateless and safe for concurrent use.
type UUIDv7Tickets struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
func (UUIDv7Tickets) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Snapshot is an immutable published listing.
type Snapshot struct {
	Ticket     string
	Generation uint64
	Mode       Mode
	entries    []apps.Entry
}

// Entries returns a copy of the listing.
func (s *Snapshot) Entries() []apps.Entry {
	return slices.Clone(s.entries)
}

// Len returns the number of entries, sentinel included.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Pending is an issued refresh.
type Pending struct {
	Ticket     string
	Generation uint64

	mode Mode
	done chan struct{}
	snap *Snapshot
	err  error
}

// Done is closed when the refresh has finished or been discarded.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the refresh finishes. A superseded refresh returns
// ErrSuperseded.
func (p *Pending) Wait(ctx context.Context) (*Snapshot, error) {
	select {
	case <-p.done:
		return p.snap, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Refresher runs index builds in the background and publishes only the
// result of the most recently issued one.
type Refresher struct {
	index   *Index
	tickets TicketSource
	log     *slog.Logger

	mu     sync.Mutex
	issued uint64
	cancel context.CancelFunc
	latest *Pending

	current atomic.Pointer[Snapshot]
}

// NewRefresher creates a Refresher. A nil tickets source uses UUIDv7Tickets.
func NewRefresher(ix *Index, tickets TicketSource, log *slog.Logger) *Refresher {
	if tickets == nil {
		tickets = UUIDv7Tickets{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Refresher{index: ix, tickets: tickets, log: log}
}

// Refresh issues a new background build and cancels any in-flight one.
func (r *Refresher) Refresh(ctx context.Context, mode Mode) *Pending {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.issued++
	rctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	p := &Pending{
		Ticket:     r.tickets.Generate(),
		Generation: r.issued,
		mode:       mode,
		done:       make(chan struct{}),
	}
	r.latest = p
	r.mu.Unlock()

	r.log.Debug("refresh issued", "ticket", p.Ticket, "generation", p.Generation, "mode", mode)
	go r.run(rctx, cancel, p, mode)
	return p
}

// RefreshAndWait issues a refresh and waits for its snapshot.
func (r *Refresher) RefreshAndWait(ctx context.Context, mode Mode) (*Snapshot, error) {
	return r.Refresh(ctx, mode).Wait(ctx)
}

// Listing issues a refresh for mode and returns a listing that never
// reports ErrSuperseded. When a later refresh overtakes this one, its
// snapshot is used if it was built for the same mode; otherwise the
// listing is built directly and left unpublished.
func (r *Refresher) Listing(ctx context.Context, mode Mode) (*Snapshot, error) {
	p := r.Refresh(ctx, mode)
	snap, err := p.Wait(ctx)
	if !errors.Is(err, ErrSuperseded) {
		return snap, err
	}

	r.mu.Lock()
	latest := r.latest
	r.mu.Unlock()
	if latest != nil && latest.mode == mode {
		if snap, err := latest.Wait(ctx); err == nil {
			return snap, nil
		}
	}

	r.log.Debug("refresh overtaken, building directly", "ticket", p.Ticket, "mode", mode)
	entries, err := r.index.Build(ctx, mode)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Ticket: p.Ticket, Generation: p.Generation, Mode: mode, entries: entries}, nil
}

// Snapshot returns the last published listing, or nil before the first
// publish.
func (r *Refresher) Snapshot() *Snapshot {
	return r.current.Load()
}

func (r *Refresher) run(ctx context.Context, cancel context.CancelFunc, p *Pending, mode Mode) {
	defer close(p.done)
	defer cancel()

	entries, err := r.index.Build(ctx, mode)

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.Generation != r.issued {
		p.err = ErrSuperseded
		r.log.Debug("refresh discarded", "ticket", p.Ticket, "generation", p.Generation, "latest", r.issued)
		return
	}
	if err != nil {
		p.err = err
		return
	}

	p.snap = &Snapshot{
		Ticket:     p.Ticket,
		Generation: p.Generation,
		Mode:       mode,
		entries:    entries,
	}
	r.current.Store(p.snap)
}
