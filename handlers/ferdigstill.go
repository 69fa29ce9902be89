package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// FerdigstillHandler submits a draft as a case of its chosen type
func FerdigstillHandler(c echo.Context) error {
	result, err := ferdigstillService.Ferdigstill(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// ValiderHandler runs the full validation without submitting, so the client
// can surface problems before the caseworker hits submit
func ValiderHandler(c echo.Context) error {
	if err := ferdigstillService.Valider(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
