package handlers

import (
	"net/http"

	"klage_registrering_go/models"

	"github.com/labstack/echo/v4"
)

type searchPartRequest struct {
	ID models.PartID `json:"id"`
}

// SearchPartHandler resolves a party identifier into a display-ready party
// with name, availability and protection statuses
func SearchPartHandler(c echo.Context) error {
	var req searchPartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.ID.Value == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	if !models.IsValidPartType(req.ID.Type) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown part type")
	}

	part, err := partService.Resolve(c.Request().Context(), req.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, part)
}
