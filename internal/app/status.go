package app

import (
	"context"
	"time"

	"github.com/dkeye/Signal/internal/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Stats is a point-in-time view of the relay.
type Stats struct {
	Connections int             `json:"connections"`
	Rooms       []core.RoomInfo `json:"rooms"`
}

type StatsSource interface {
	Stats() Stats
}

// StatusReporter periodically logs relay occupancy.
type StatusReporter struct {
	Source StatsSource
	Period time.Duration
	Logger *zerolog.Logger
}

func (s StatusReporter) Run(ctx context.Context) {
	if s.Period <= 0 {
		return
	}
	ticker := time.NewTicker(s.Period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Report()
		}
	}
}

func (s StatusReporter) Report() {
	logger := s.Logger
	if logger == nil {
		logger = &log.Logger
	}
	st := s.Source.Stats()
	rooms := zerolog.Dict()
	for _, r := range st.Rooms {
		rooms.Int(string(r.ID), r.MemberCount)
	}
	logger.Info().
		Str("module", "app.status").
		Int("connections", st.Connections).
		Int("rooms", len(st.Rooms)).
		Dict("members", rooms).
		Msg("relay status")
}
