// Package orch routes signaling messages between room members and tears
// membership down when a connection goes away.
package orch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/Signal/internal/app"
	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/rs/zerolog/log"
)

const defaultPresenceTimeout = 2 * time.Second

// Orchestrator is the one service object request handlers talk to. Its mutex
// serialises join, leave, route and disconnect so that role assignment and
// cleanup never interleave.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    *app.RoomManager
	Policy   app.Policy
	// Presence is optional.
	Presence        app.Presence
	PresenceTimeout time.Duration

	mu sync.Mutex
}

func New(reg *app.Registry, rooms *app.RoomManager, policy app.Policy) *Orchestrator {
	return &Orchestrator{
		Registry: reg,
		Rooms:    rooms,
		Policy:   policy,
	}
}

// Connect registers a freshly accepted transport.
func (o *Orchestrator) Connect(conn core.SignalConnection) domain.ConnID {
	return o.Registry.Register(conn)
}

func (o *Orchestrator) Stats() app.Stats {
	return app.Stats{
		Connections: o.Registry.Count(),
		Rooms:       o.Rooms.List(),
	}
}

type presenceEvent struct {
	joined bool
	room   domain.RoomID
	conn   domain.ConnID
}

// exclusive runs fn under the orchestrator lock and publishes the presence
// events it collected once the lock is released.
func (o *Orchestrator) exclusive(fn func(events *[]presenceEvent) error) error {
	var events []presenceEvent
	err := func() error {
		o.mu.Lock()
		defer o.mu.Unlock()
		return fn(&events)
	}()
	o.publishPresence(events)
	return err
}

func (o *Orchestrator) publishPresence(events []presenceEvent) {
	if o.Presence == nil || len(events) == 0 {
		return
	}
	timeout := o.PresenceTimeout
	if timeout <= 0 {
		timeout = defaultPresenceTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, ev := range events {
		var err error
		if ev.joined {
			err = o.Presence.Joined(ctx, ev.room, ev.conn)
		} else {
			err = o.Presence.Left(ctx, ev.room, ev.conn)
		}
		if err != nil {
			log.Warn().Err(err).Str("module", "orch").Str("sid", string(ev.conn)).Str("room", string(ev.room)).Msg("presence update failed")
		}
	}
}

// send queues frame for one receiver without waiting. It reports whether the
// frame was accepted by the receiver's queue.
func (o *Orchestrator) send(room domain.RoomID, to domain.ConnID, frame core.Frame) bool {
	conn, ok := o.Registry.Lookup(to)
	if !ok {
		log.Debug().Str("module", "orch").Str("sid", string(to)).Msg("receiver unavailable, skipped")
		return false
	}
	err := conn.TrySend(frame)
	if err == nil {
		return true
	}
	if !errors.Is(err, core.ErrBackpressure) {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(to)).Msg("send failed")
		return false
	}

	action := app.DropMessage
	if o.Policy != nil {
		action = o.Policy.OnBackPressure(room, to)
	}
	log.Warn().
		Str("module", "orch").
		Str("sid", string(to)).
		Str("room", string(room)).
		Stringer("action", action).
		Msg("receiver queue full")
	if action == app.KickMember {
		conn.Close()
	}
	return false
}

// broadcast encodes v once and offers it to every recipient.
func (o *Orchestrator) broadcast(room domain.RoomID, recipients []domain.ConnID, v any) int {
	if len(recipients) == 0 {
		return 0
	}
	frame, err := core.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("encode outbound")
		return 0
	}
	sent := 0
	for _, id := range recipients {
		if o.send(room, id, frame) {
			sent++
		}
	}
	return sent
}

func (o *Orchestrator) notifyLeftLocked(sid domain.ConnID, res app.LeaveResult, events *[]presenceEvent) {
	sent := o.broadcast(res.Room, res.Remaining, core.NewParticipantLeft(res.Room, sid))
	*events = append(*events, presenceEvent{joined: false, room: res.Room, conn: sid})
	log.Info().
		Str("module", "orch").
		Str("sid", string(sid)).
		Str("room", string(res.Room)).
		Int("notified", sent).
		Bool("room_removed", res.Deleted).
		Msg("left room")
}
