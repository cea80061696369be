// Package ops exposes the operational HTTP endpoints: health, readiness,
// and Prometheus metrics.
package ops

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fleawatch/fleawatch/internal/scan"
)

// Server is a small echo server for platform health checks and scraping.
// It never touches the scan loop beyond reading its counters.
type Server struct {
	echo *echo.Echo
	addr string
	loop *scan.Loop
	log  *slog.Logger
}

// New creates an ops server bound to addr, reporting on loop.
func New(addr string, loop *scan.Loop, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo: e,
		addr: addr,
		loop: loop,
		log:  log,
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/readyz", func(c echo.Context) error {
		snap := s.loop.Snapshot()
		return c.JSON(http.StatusOK, map[string]any{
			"status":   "ready",
			"state":    string(s.loop.State()),
			"cycles":   snap.Cycles,
			"notified": snap.Notified,
			"seen":     snap.SeenCount,
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s
}

// Start runs the server and blocks until it stops. http.ErrServerClosed is
// swallowed: it is the normal shutdown path.
func (s *Server) Start() error {
	s.log.Info("ops server listening", "addr", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
