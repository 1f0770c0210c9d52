package orch

import (
	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/rs/zerolog/log"
)

// Join puts sid into room, evicting it from any other room first. Existing
// members learn about the joiner and the joiner gets the room state.
func (o *Orchestrator) Join(sid domain.ConnID, room domain.RoomID) error {
	return o.exclusive(func(events *[]presenceEvent) error {
		if !o.Registry.Has(sid) {
			return core.ErrUnknownConnection
		}

		res := o.Rooms.Join(sid, room)
		if res.Previous != nil {
			o.notifyLeftLocked(sid, *res.Previous, events)
		}
		if !res.Rejoined {
			o.broadcast(room, res.Existing, core.NewParticipantJoined(room, sid, res.Role))
			*events = append(*events, presenceEvent{joined: true, room: room, conn: sid})
		}
		o.broadcast(room, []domain.ConnID{sid}, core.NewRoomInfo(room, res.Existing, res.Role))

		log.Info().
			Str("module", "orch").
			Str("sid", string(sid)).
			Str("room", string(room)).
			Str("role", string(res.Role)).
			Int("existing", len(res.Existing)).
			Bool("rejoined", res.Rejoined).
			Msg("joined room")
		return nil
	})
}

// Leave removes sid from room, or from its current room when room is empty.
// Leaving a room sid is not in changes nothing.
func (o *Orchestrator) Leave(sid domain.ConnID, room domain.RoomID) error {
	return o.exclusive(func(events *[]presenceEvent) error {
		if !o.Registry.Has(sid) {
			return core.ErrUnknownConnection
		}
		res, ok := o.Rooms.Leave(sid, room)
		if !ok {
			log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("room", string(room)).Msg("leave: not in room")
			return nil
		}
		o.notifyLeftLocked(sid, res, events)
		return nil
	})
}

// Disconnect is the only path that forgets a connection. Once it returns,
// every call naming sid fails with core.ErrUnknownConnection.
func (o *Orchestrator) Disconnect(sid domain.ConnID) {
	_ = o.exclusive(func(events *[]presenceEvent) error {
		if !o.Registry.Has(sid) {
			return nil
		}
		if res, ok := o.Rooms.Leave(sid, ""); ok {
			o.notifyLeftLocked(sid, res, events)
		}
		o.Registry.Unregister(sid)
		log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("disconnected")
		return nil
	})
}
