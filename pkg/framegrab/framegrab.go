// Package framegrab provides the frame sources a stream session captures
// from. A session owns exactly one Source for its lifetime.
//
// The gateway feeds a Mailbox from the client websocket: a single-slot,
// latest-frame-only buffer. New frames overwrite unconsumed ones and bump a
// drop counter; nothing is ever queued. A stale webcam frame is worth less
// than no frame.
package framegrab

import (
	"errors"

	"golang.org/x/net/context"
)

var (
	// ErrClosed is returned by Grab after the source has been released.
	ErrClosed = errors.New("frame source closed")

	// ErrExhausted is returned by finite sources once every frame has been
	// consumed.
	ErrExhausted = errors.New("frame source exhausted")
)

type Source interface {
	// Grab blocks until the next frame is available, the source is closed,
	// or ctx is done.
	Grab(ctx context.Context) ([]byte, error)

	// Close releases the source. Safe to call more than once.
	Close() error
}
