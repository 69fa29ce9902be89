package handlers

import (
	"net/http"

	"klage_registrering_go/db"
	"klage_registrering_go/services"

	"github.com/labstack/echo/v4"
)

// PreviewSvarbrevHandler renders the draft's notification letter as a PDF so
// the caseworker can inspect it before submitting
func PreviewSvarbrevHandler(c echo.Context) error {
	r, err := services.GetRegistrering(db.DB, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	sakenGjelderName := ""
	if subject := r.SakenGjelder(); subject != nil {
		part, err := partService.Resolve(c.Request().Context(), *subject)
		if err != nil {
			return httpError(err)
		}
		sakenGjelderName = part.Name
	}

	pdf, err := services.GenerateSvarbrevPDF(r, sakenGjelderName)
	if err != nil {
		return httpError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="svarbrev.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
