package signal

import (
	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(sid domain.ConnID, m core.Join) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(m.RoomID)).Msg("join")
	if err := ctl.Orch.Join(sid, m.RoomID); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Str("room", string(m.RoomID)).Msg("join dropped")
	}
}

// handleLeave exits the current room; the connection stays open.
func (ctl *SignalWSController) handleLeave(sid domain.ConnID, m core.Leave) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(m.RoomID)).Msg("leave")
	if err := ctl.Orch.Leave(sid, m.RoomID); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("leave dropped")
	}
}
