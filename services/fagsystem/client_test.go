package fagsystem

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/saker", r.URL.Path)
		assert.Equal(t, "12345678910", r.URL.Query().Get("identifikator"))
		assert.Equal(t, "ANKE", r.URL.Query().Get("sakstype"))

		json.NewEncoder(w).Encode(map[string][]Sak{"saker": {
			{SakID: "it-1", FagsakID: "fag-1", Sakstype: "ANKE", YtelseID: "SYKEPENGER"},
		}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	saker, err := client.Search(context.Background(), "12345678910", "ANKE")
	assert.NoError(t, err)
	assert.Len(t, saker, 1)
	assert.Equal(t, "it-1", saker[0].SakID)
}

func TestGetMulighetNotFoundIsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	mulighet, err := client.GetMulighet(context.Background(), "gone")
	assert.NoError(t, err)
	assert.Nil(t, mulighet)
}

func TestMarkHandledSendsDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/saker/it-1/ferdigstill", r.URL.Path)

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "2024-06-01", body["frist"])
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	frist := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, client.MarkHandled(context.Background(), "it-1", frist))
}
