package http

import (
	"context"
	"net/http"

	"github.com/dkeye/Signal/internal/adapters/signal"
	"github.com/dkeye/Signal/internal/app/orch"
	"github.com/dkeye/Signal/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(OriginFilter(cfg.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	ctrl := signal.NewSignalWSController(o, signal.SettingsFromConfig(cfg))
	serveWS := func(c *gin.Context) {
		ctrl.HandleSignal(ctx, c)
	}
	// Older browser clients dial the root path.
	r.GET("/", serveWS)
	r.GET("/ws", serveWS)

	iceServers := cfg.WebRTCICEServers()
	api := r.Group("/api")
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, o.Stats())
	})
	api.GET("/ice", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": iceServers})
	})

	log.Info().Str("module", "adapters.http").Int("origins", len(cfg.AllowedOrigins)).Msg("router setup")
	return r
}
