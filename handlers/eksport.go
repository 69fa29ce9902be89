package handlers

import (
	"net/http"

	"klage_registrering_go/db"
	"klage_registrering_go/middleware"
	"klage_registrering_go/services"

	"github.com/labstack/echo/v4"
)

// ExportHandler downloads the caller's finished registrations as an Excel
// workbook
func ExportHandler(c echo.Context) error {
	navIdent := middleware.GetNavIdent(c)

	buf, err := services.ExportFerdigeRegistreringer(db.DB, navIdent)
	if err != nil {
		return httpError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="registreringer.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
