package core

// Frame is one encoded text message on the signaling transport.
type Frame []byte

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend queues f without blocking. It returns ErrBackpressure when the
	// queue is full and ErrConnClosed after Close.
	TrySend(f Frame) error
	Close()
	IsClosed() bool
}
