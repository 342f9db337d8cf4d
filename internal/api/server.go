// Package api serves the plant collection as a small JSON API.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/kvitko/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

// Services are the use cases the API exposes.
type Services struct {
	Plants   service.PlantService
	Rooms    service.RoomService
	Calendar service.CalendarService
	Catalog  service.CatalogService
}

type Server struct {
	svc       Services
	logger    *slog.Logger
	now       func() time.Time
	startedAt time.Time
}

func NewServer(svc Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		svc:       svc,
		logger:    logger,
		now:       time.Now,
		startedAt: time.Now(),
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.health)

	e.GET("/plants", s.listPlants)
	e.GET("/plants/graveyard", s.listRetired)
	e.POST("/plants/reorder", s.reorder)
	e.GET("/plants/:id", s.getPlant)
	e.POST("/plants/:id/water", s.water)
	e.POST("/plants/:id/retire", s.retire)

	e.GET("/rooms", s.listRooms)

	e.GET("/calendar", s.calendar)
	e.GET("/agenda", s.agenda)

	e.GET("/species", s.listSpecies)
	e.GET("/species/:key", s.showSpecies)
}

// Echo builds a configured echo instance with all routes.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug("http request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	s.Register(e)
	return e
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	e := s.Echo()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("api stopped")
	return nil
}
