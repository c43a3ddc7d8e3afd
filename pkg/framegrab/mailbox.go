package framegrab

import (
	"sync"

	"golang.org/x/net/context"
)

// Mailbox is a single-slot frame buffer with overwrite semantics. Offer never
// blocks; Grab blocks until a frame arrives.
type Mailbox struct {
	mu   sync.Mutex
	cond *sync.Cond

	slot     []byte
	hasFrame bool
	closed   bool
	drops    uint64
}

func NewMailbox() *Mailbox {
	m := &Mailbox{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Offer places a frame in the slot, overwriting any unconsumed frame.
// Returns true when an unconsumed frame was dropped.
func (m *Mailbox) Offer(frame []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false
	}

	dropped := m.hasFrame
	if dropped {
		m.drops++
	}

	m.slot = frame
	m.hasFrame = true
	m.cond.Signal()

	return dropped
}

func (m *Mailbox) Grab(ctx context.Context) ([]byte, error) {
	// Wake the wait loop when the caller gives up.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			m.mu.Lock()
			m.cond.Broadcast()
			m.mu.Unlock()
		case <-stop:
		}
	}()

	m.mu.Lock()
	defer m.mu.Unlock()

	for !m.hasFrame && !m.closed && ctx.Err() == nil {
		m.cond.Wait()
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if m.closed {
		return nil, ErrClosed
	}

	frame := m.slot
	m.slot = nil
	m.hasFrame = false

	return frame, nil
}

// Drops reports how many unconsumed frames were overwritten.
func (m *Mailbox) Drops() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drops
}

func (m *Mailbox) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		m.slot = nil
		m.hasFrame = false
		m.cond.Broadcast()
	}

	return nil
}
