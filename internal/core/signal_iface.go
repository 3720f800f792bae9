package core

import "errors"

// ErrConnClosed is returned by TrySend once the connection has been closed.
// It is not back-pressure: the disconnect path is already under way.
var ErrConnClosed = errors.New("connection closed")

// Frame is one encoded outbound message.
type Frame []byte

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend enqueues without blocking; an error means the frame was not queued.
	TrySend(Frame) error
	Close()
}
