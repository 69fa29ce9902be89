package handlers

import (
	"errors"
	"net/http"

	"klage_registrering_go/services"
	"klage_registrering_go/services/upstream"

	"github.com/labstack/echo/v4"
)

// httpError maps service-layer errors onto HTTP responses. Validation errors
// keep their full sectioned report; upstream failures keep only system name
// and status code.
func httpError(err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return echo.NewHTTPError(http.StatusBadRequest, validationErr)
	}

	switch {
	case errors.Is(err, services.ErrRegistreringNotFound),
		errors.Is(err, services.ErrMulighetNotFound),
		errors.Is(err, services.ErrPartNotFound),
		errors.Is(err, services.ErrMottakerNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRegistreringFinished):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrAvsenderRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var upstreamErr *upstream.Error
	if errors.As(err, &upstreamErr) {
		return echo.NewHTTPError(http.StatusBadGateway, upstreamErr.Error())
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "Internal error")
}
