package api

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/kvitko/internal/ordering"
	"github.com/alexanderramin/kvitko/internal/repository"
	"github.com/alexanderramin/kvitko/internal/service"
	"github.com/alexanderramin/kvitko/internal/watering"
	"github.com/labstack/echo/v4"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrPlantRetired), errors.Is(err, ordering.ErrRetired):
		return http.StatusConflict
	case errors.Is(err, ordering.ErrIndexOutOfRange), errors.Is(err, watering.ErrUnknownSpecies):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("api request failed", "path", c.Path(), "error", err)
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
