package orch

import (
	"fmt"

	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/rs/zerolog/log"
)

// Route forwards an offer, answer or candidate from sid. With a target it
// reaches that one member; without one it reaches every other member whose
// transport is open. Nothing is acknowledged or retried.
func (o *Orchestrator) Route(sid domain.ConnID, msg core.Negotiation) error {
	return o.exclusive(func(*[]presenceEvent) error {
		if !o.Registry.Has(sid) {
			return core.ErrUnknownConnection
		}

		room := msg.RoomID
		if room == "" {
			current, ok := o.Rooms.RoomOf(sid)
			if !ok {
				return core.ErrNoActiveRoom
			}
			room = current
		}
		if !o.Rooms.IsMember(sid, room) {
			return fmt.Errorf("%w: room %q", core.ErrNotARoomMember, room)
		}

		fwd := core.NewForwarded(msg, room, sid)
		if msg.TargetID != "" {
			if msg.TargetID == sid || !o.Rooms.IsMember(msg.TargetID, room) {
				return fmt.Errorf("%w: %s", core.ErrTargetUnavailable, msg.TargetID)
			}
			if o.broadcast(room, []domain.ConnID{msg.TargetID}, fwd) == 0 {
				return fmt.Errorf("%w: %s", core.ErrTargetUnavailable, msg.TargetID)
			}
			log.Debug().
				Str("module", "orch").
				Str("sid", string(sid)).
				Str("target", string(msg.TargetID)).
				Str("type", string(msg.Type)).
				Msg("forwarded")
			return nil
		}

		others := make([]domain.ConnID, 0)
		for _, id := range o.Rooms.MembersOf(room) {
			if id != sid {
				others = append(others, id)
			}
		}
		sent := o.broadcast(room, others, fwd)
		log.Debug().
			Str("module", "orch").
			Str("sid", string(sid)).
			Str("room", string(room)).
			Str("type", string(msg.Type)).
			Int("sent_to", sent).
			Int("members", len(others)).
			Msg("broadcast")
		return nil
	})
}
