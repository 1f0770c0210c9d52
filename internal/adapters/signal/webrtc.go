package signal

import (
	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/rs/zerolog/log"
)

// handleNegotiation relays an offer, answer or candidate. The payload is
// never looked at here.
func (ctl *SignalWSController) handleNegotiation(sid domain.ConnID, m core.Negotiation) {
	if err := ctl.Orch.Route(sid, m); err != nil {
		log.Warn().
			Err(err).
			Str("module", "signal").
			Str("sid", string(sid)).
			Str("type", string(m.Type)).
			Str("room", string(m.RoomID)).
			Str("target", string(m.TargetID)).
			Msg("signal dropped")
	}
}
