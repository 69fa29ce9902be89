package handlers

import (
	"net/http"
	"time"

	"klage_registrering_go/db"
	"klage_registrering_go/middleware"
	"klage_registrering_go/models"
	"klage_registrering_go/services"

	"github.com/labstack/echo/v4"
)

type createRegistreringRequest struct {
	SakenGjelder models.PartID `json:"saken_gjelder"`
}

// CreateRegistreringHandler creates a new draft seeded with the case subject
func CreateRegistreringHandler(c echo.Context) error {
	var req createRegistreringRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.SakenGjelder.Value == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "saken_gjelder is required")
	}

	navIdent := middleware.GetNavIdent(c)
	r, err := services.CreateRegistrering(db.DB, navIdent, req.SakenGjelder)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, r)
}

// GetRegistreringHandler fetches a draft by id
func GetRegistreringHandler(c echo.Context) error {
	r, err := services.GetRegistrering(db.DB, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

// ListRegistreringerHandler lists the caller's drafts; ?ferdige=true lists
// finished ones
func ListRegistreringerHandler(c echo.Context) error {
	navIdent := middleware.GetNavIdent(c)
	ferdige := c.QueryParam("ferdige") == "true"

	registreringer, err := services.ListRegistreringer(db.DB, navIdent, ferdige)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, registreringer)
}

// DeleteRegistreringHandler removes an unfinished draft
func DeleteRegistreringHandler(c echo.Context) error {
	if err := services.DeleteRegistrering(db.DB, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type journalpostRequest struct {
	JournalpostID string `json:"journalpost_id"`
}

// SetJournalpostHandler sets the archive entry the draft refers to
func SetJournalpostHandler(c echo.Context) error {
	var req journalpostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.JournalpostID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "journalpost_id is required")
	}

	r, err := services.SetJournalpostID(db.DB, c.Param("id"), req.JournalpostID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

type typeRequest struct {
	TypeID string `json:"type_id"`
}

// SetTypeHandler sets the chosen case type
func SetTypeHandler(c echo.Context) error {
	var req typeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	r, err := services.SetType(db.DB, c.Param("id"), req.TypeID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

type mulighetRequest struct {
	MulighetID         string `json:"mulighet_id"`
	BasedOnJournalpost bool   `json:"based_on_journalpost"`
}

// SetMulighetHandler sets the chosen opportunity
func SetMulighetHandler(c echo.Context) error {
	var req mulighetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.MulighetID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "mulighet_id is required")
	}

	r, err := services.SetMulighet(db.DB, c.Param("id"), req.MulighetID, req.BasedOnJournalpost)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

type ytelseRequest struct {
	YtelseID string `json:"ytelse_id"`
}

// SetYtelseHandler sets the benefit type
func SetYtelseHandler(c echo.Context) error {
	var req ytelseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	r, err := services.SetYtelse(db.DB, c.Param("id"), req.YtelseID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

type dateRequest struct {
	Date *string `json:"date"`
}

func (req *dateRequest) parse() (*time.Time, error) {
	if req.Date == nil || *req.Date == "" {
		return nil, nil
	}
	parsed, err := services.ParseDate(*req.Date)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// SetMottattVedtaksinstansHandler sets the date received at first instance
func SetMottattVedtaksinstansHandler(c echo.Context) error {
	var req dateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	date, err := req.parse()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	r, err := services.SetMottattVedtaksinstans(db.DB, c.Param("id"), date)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

// SetMottattKlageinstansHandler sets the date received at the appeal instance
func SetMottattKlageinstansHandler(c echo.Context) error {
	var req dateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	date, err := req.parse()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	r, err := services.SetMottattKlageinstans(db.DB, c.Param("id"), date)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

type behandlingstidRequest struct {
	Units      int    `json:"units"`
	UnitTypeID string `json:"unit_type_id"`
}

// SetBehandlingstidHandler sets the expected processing time
func SetBehandlingstidHandler(c echo.Context) error {
	var req behandlingstidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	r, err := services.SetBehandlingstid(db.DB, c.Param("id"), req.Units, req.UnitTypeID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

type hjemlerRequest struct {
	HjemmelIDList []string `json:"hjemmel_id_list"`
}

// SetHjemlerHandler replaces the statutory-ground list
func SetHjemlerHandler(c echo.Context) error {
	var req hjemlerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	r, err := services.SetHjemler(db.DB, c.Param("id"), req.HjemmelIDList)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

type saksbehandlerRequest struct {
	SaksbehandlerIdent *string `json:"saksbehandler_ident"`
}

// SetSaksbehandlerHandler assigns a caseworker
func SetSaksbehandlerHandler(c echo.Context) error {
	var req saksbehandlerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	r, err := services.SetSaksbehandler(db.DB, c.Param("id"), req.SaksbehandlerIdent)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

type oppgaveRequest struct {
	OppgaveID *string `json:"oppgave_id"`
}

// SetOppgaveHandler links a task-system id
func SetOppgaveHandler(c echo.Context) error {
	var req oppgaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	r, err := services.SetOppgave(db.DB, c.Param("id"), req.OppgaveID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

type partRequest struct {
	Part *models.PartID `json:"part"`
}

// SetKlagerHandler sets the complainant
func SetKlagerHandler(c echo.Context) error {
	var req partRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	r, err := services.SetKlager(db.DB, c.Param("id"), req.Part)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

// SetFullmektigHandler sets or clears the representative
func SetFullmektigHandler(c echo.Context) error {
	var req partRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	r, err := services.SetFullmektig(db.DB, c.Param("id"), req.Part)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

// SetAvsenderHandler sets or clears the sender override
func SetAvsenderHandler(c echo.Context) error {
	var req partRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	r, err := services.SetAvsender(db.DB, c.Param("id"), req.Part)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

// UpdateSvarbrevHandler applies notification-letter changes
func UpdateSvarbrevHandler(c echo.Context) error {
	var req services.SvarbrevUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	r, err := services.UpdateSvarbrev(db.DB, c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

// AddMottakerHandler adds a notification-letter receiver
func AddMottakerHandler(c echo.Context) error {
	var req services.MottakerInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Part.Value == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "part is required")
	}

	r, err := services.AddMottaker(db.DB, c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

// RemoveMottakerHandler removes a receiver
func RemoveMottakerHandler(c echo.Context) error {
	r, err := services.RemoveMottaker(db.DB, c.Param("id"), c.Param("mottakerId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}
