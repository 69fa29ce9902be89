package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"klage_registrering_go/db"
	"klage_registrering_go/middleware"
	"klage_registrering_go/models"
	"klage_registrering_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	gdb.AutoMigrate(&models.Registrering{}, &models.Mottaker{}, &models.MulighetSnapshot{})
	db.DB = gdb
}

func newAuthedContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyNavIdent, "Z123456")
	return c, rec
}

func TestCreateRegistreringHandler(t *testing.T) {
	setupHandlerTestDB(t)

	c, rec := newAuthedContext(t, http.MethodPost, "/api/registreringer",
		`{"saken_gjelder": {"type": "PERSON", "value": "12345678910"}}`)

	assert.NoError(t, CreateRegistreringHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.Registrering
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Z123456", created.CreatedBy)
	assert.Equal(t, "12345678910", *created.SakenGjelderValue)
	assert.Len(t, created.Mottakere, 1)
}

func TestCreateRegistreringHandlerRequiresSubject(t *testing.T) {
	setupHandlerTestDB(t)

	c, _ := newAuthedContext(t, http.MethodPost, "/api/registreringer", `{}`)

	err := CreateRegistreringHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestGetRegistreringHandlerNotFound(t *testing.T) {
	setupHandlerTestDB(t)

	c, _ := newAuthedContext(t, http.MethodGet, "/api/registreringer/x", "")
	c.SetParamNames("id")
	c.SetParamValues("no-such-id")

	err := GetRegistreringHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestSetTypeHandler(t *testing.T) {
	setupHandlerTestDB(t)
	r, err := services.CreateRegistrering(db.DB, "Z123456", models.PartID{Type: models.PartTypePerson, Value: "12345678910"})
	assert.NoError(t, err)

	c, rec := newAuthedContext(t, http.MethodPut, "/api/registreringer/x/type-id", `{"type_id": "ANKE"}`)
	c.SetParamNames("id")
	c.SetParamValues(r.ID)

	assert.NoError(t, SetTypeHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated models.Registrering
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.TypeAnke, *updated.TypeID)
}

func TestMutationOnFinishedDraftConflicts(t *testing.T) {
	setupHandlerTestDB(t)
	r, err := services.CreateRegistrering(db.DB, "Z123456", models.PartID{Type: models.PartTypePerson, Value: "12345678910"})
	assert.NoError(t, err)
	db.DB.Model(&models.Registrering{}).Where("id = ?", r.ID).Update("finished_at", time.Now())

	c, _ := newAuthedContext(t, http.MethodPut, "/api/registreringer/x/type-id", `{"type_id": "ANKE"}`)
	c.SetParamNames("id")
	c.SetParamValues(r.ID)

	err = SetTypeHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestListRegistreringerHandlerScopesToCaller(t *testing.T) {
	setupHandlerTestDB(t)
	_, err := services.CreateRegistrering(db.DB, "Z123456", models.PartID{Type: models.PartTypePerson, Value: "12345678910"})
	assert.NoError(t, err)
	_, err = services.CreateRegistrering(db.DB, "Z999999", models.PartID{Type: models.PartTypePerson, Value: "10987654321"})
	assert.NoError(t, err)

	c, rec := newAuthedContext(t, http.MethodGet, "/api/registreringer", "")

	assert.NoError(t, ListRegistreringerHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var listed []models.Registrering
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
	assert.Equal(t, "Z123456", listed[0].CreatedBy)
}

func TestAddAndRemoveMottakerHandlers(t *testing.T) {
	setupHandlerTestDB(t)
	r, err := services.CreateRegistrering(db.DB, "Z123456", models.PartID{Type: models.PartTypePerson, Value: "12345678910"})
	assert.NoError(t, err)

	c, rec := newAuthedContext(t, http.MethodPost, "/api/registreringer/x/mottakere",
		`{"part": {"type": "VIRKSOMHET", "value": "987654321"}, "handling": "CENTRAL_PRINT"}`)
	c.SetParamNames("id")
	c.SetParamValues(r.ID)

	assert.NoError(t, AddMottakerHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated models.Registrering
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Len(t, updated.Mottakere, 2)

	c, rec = newAuthedContext(t, http.MethodDelete, "/api/registreringer/x/mottakere/y", "")
	c.SetParamNames("id", "mottakerId")
	c.SetParamValues(r.ID, updated.Mottakere[1].ID)

	assert.NoError(t, RemoveMottakerHandler(c))
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Len(t, updated.Mottakere, 1)
}
