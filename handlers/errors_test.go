package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"klage_registrering_go/services"
	"klage_registrering_go/services/upstream"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	return httpErr.Code
}

func TestHttpErrorMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusOf(t, httpError(services.ErrRegistreringNotFound)))
	assert.Equal(t, http.StatusNotFound, statusOf(t, httpError(services.ErrMulighetNotFound)))
	assert.Equal(t, http.StatusNotFound, statusOf(t, httpError(services.ErrPartNotFound)))
	assert.Equal(t, http.StatusConflict, statusOf(t, httpError(services.ErrRegistreringFinished)))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, httpError(services.ErrAvsenderRequired)))
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, httpError(errors.New("boom"))))

	// Wrapped sentinels map the same way
	wrapped := fmt.Errorf("mulighet x: %w", services.ErrMulighetNotFound)
	assert.Equal(t, http.StatusNotFound, statusOf(t, httpError(wrapped)))
}

func TestHttpErrorKeepsValidationReport(t *testing.T) {
	validationErr := &services.ValidationError{
		Sections: []services.ValidationSection{{
			Section: services.SectionSaksdata,
			Properties: []services.InvalidProperty{
				{Field: "ytelseId", Reason: "benefit type must be chosen"},
			},
		}},
	}

	err := httpError(validationErr)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, validationErr, httpErr.Message)
}

func TestHttpErrorUpstreamFailureIsBadGateway(t *testing.T) {
	upstreamErr := &upstream.Error{System: "arkiv", StatusCode: http.StatusInternalServerError}

	err := httpError(fmt.Errorf("finalize failed: %w", upstreamErr))
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
}

func TestHttpErrorInternalDetailsAreHidden(t *testing.T) {
	err := httpError(errors.New("pq: secret connection string"))
	httpErr := err.(*echo.HTTPError)
	assert.Equal(t, "Internal error", httpErr.Message)
}
