package handlers

import (
	"net/http"

	"klage_registrering_go/db"
	"klage_registrering_go/models"
	"klage_registrering_go/services"

	"github.com/labstack/echo/v4"
)

// GetMulighetHandler resolves the opportunity a draft references, fetching
// from the source system on first access and the cached snapshot after
func GetMulighetHandler(c echo.Context) error {
	r, err := services.GetRegistrering(db.DB, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	mulighet, err := mulighetService.Resolve(c.Request().Context(), r)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, mulighet)
}

type searchMuligheterRequest struct {
	Identifikator string `json:"identifikator"`
	Sakstype      string `json:"sakstype"`
}

// SearchMuligheterHandler lists decided legacy cases for an identifier, the
// candidates a draft can be registered against
func SearchMuligheterHandler(c echo.Context) error {
	var req searchMuligheterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Identifikator == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "identifikator is required")
	}
	if req.Sakstype != "" && !models.IsValidType(req.Sakstype) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown sakstype")
	}

	saker, err := fagsystemClient.Search(c.Request().Context(), req.Identifikator, req.Sakstype)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, saker)
}
