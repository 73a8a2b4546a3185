package testutil

import (
	"fmt"
	"sync"
)

// SequentialTickets generates predictable refresh tickets for tests.
//
// Tickets are "ticket-0001", "ticket-0002", ... so golden traces are
// byte-identical across runs. Implements index.TicketSource.
//
// Thread-safety: SequentialTickets is safe for concurrent use via internal mutex.
type SequentialTickets struct {
	mu sync.Mutex
	n  int
}

// NewSequentialTickets creates a generator whose first ticket is ticket-0001.
func NewSequentialTickets() *SequentialTickets {
	return &SequentialTickets{}
}

// Generate returns the next ticket.
func (g *SequentialTickets) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("ticket-%04d", g.n)
}
