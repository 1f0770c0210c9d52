package core

import "errors"

// Every error below is non-fatal: the message that caused it is dropped, a
// diagnostic record is logged, and the sender gets no reply.
var (
	ErrMalformedMessage  = errors.New("malformed message")
	ErrUnknownType       = errors.New("unknown message type")
	ErrNoActiveRoom      = errors.New("no active room")
	ErrNotARoomMember    = errors.New("not a room member")
	ErrTargetUnavailable = errors.New("target unavailable")
	ErrUnknownConnection = errors.New("unknown connection")

	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)
