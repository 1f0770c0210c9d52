package app

import (
	"context"

	"github.com/dkeye/Signal/internal/domain"
)

// Presence mirrors membership changes to an external store. It is write-only:
// the relay never reads it back, so in-memory state stays authoritative.
type Presence interface {
	Joined(ctx context.Context, room domain.RoomID, conn domain.ConnID) error
	Left(ctx context.Context, room domain.RoomID, conn domain.ConnID) error
}
