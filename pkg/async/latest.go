package async

import "sync"

// Latest surfaces only the result of the most recently issued request.
// Results of older requests are discarded when they arrive.
type Latest[T any] struct {
	mu        sync.Mutex
	issued    uint64
	delivered uint64
	value     T
}

// Begin issues a ticket for a new request. It supersedes all earlier tickets.
func (l *Latest[T]) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.issued++
	return l.issued
}

// Deliver stores v if ticket is still the newest issued one.
// It reports whether v was surfaced.
func (l *Latest[T]) Deliver(ticket uint64, v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ticket != l.issued || ticket == l.delivered {
		return false
	}
	l.delivered = ticket
	l.value = v
	return true
}

// Value returns the last surfaced value and its ticket. ok is false until a value was delivered.
func (l *Latest[T]) Value() (v T, ticket uint64, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.delivered, l.delivered != 0
}

// Current reports whether ticket is still the newest issued one.
func (l *Latest[T]) Current(ticket uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ticket == l.issued
}
