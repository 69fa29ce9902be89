package arkiv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"klage_registrering_go/services/upstream"
)

const systemName = "arkiv"

// Journalstatus constants as observed on archive entries
const (
	JournalstatusMottatt      = "MOTTATT"
	JournalstatusJournalfoert = "JOURNALFOERT"
	JournalstatusFerdigstilt  = "FERDIGSTILT"
	JournalstatusUtgaar       = "UTGAAR"
)

// Journalposttype constants
const (
	JournalposttypeInngaaende = "I"
	JournalposttypeUtgaaende  = "U"
	JournalposttypeNotat      = "N"
)

// AvsenderMottaker identifies the sender or receiver on an archive entry
type AvsenderMottaker struct {
	ID     string `json:"id"`
	IDType string `json:"idType"` // FNR or ORGNR
	Navn   string `json:"navn,omitempty"`
}

// Sak is the case linkage on an archive entry
type Sak struct {
	FagsakID     string `json:"fagsakId"`
	Fagsaksystem string `json:"fagsaksystem"`
	Sakstype     string `json:"sakstype"`
}

// Bruker is the subject the archive entry concerns
type Bruker struct {
	ID     string `json:"id"`
	IDType string `json:"idType"`
}

// Dokument is a document attached to an archive entry
type Dokument struct {
	DokumentInfoID string `json:"dokumentInfoId"`
	Tittel         string `json:"tittel"`
}

// Journalpost is an entry in the document archive
type Journalpost struct {
	JournalpostID        string            `json:"journalpostId"`
	Tittel               string            `json:"tittel"`
	Journalposttype      string            `json:"journalposttype"`
	Journalstatus        string            `json:"journalstatus"`
	Tema                 string            `json:"tema"`
	AvsenderMottaker     *AvsenderMottaker `json:"avsenderMottaker,omitempty"`
	Sak                  *Sak              `json:"sak,omitempty"`
	Bruker               *Bruker           `json:"bruker,omitempty"`
	Journalfoerendeenhet string            `json:"journalfoerendeEnhet"`
	DatoOpprettet        *time.Time        `json:"datoOpprettet,omitempty"`
	Dokumenter           []Dokument        `json:"dokumenter,omitempty"`
}

// IsFinalized reports whether the entry is already journalfoert/ferdigstilt
// and therefore can no longer be mutated in place once locked to a case
func (j *Journalpost) IsFinalized() bool {
	return j.Journalstatus == JournalstatusJournalfoert || j.Journalstatus == JournalstatusFerdigstilt
}

// HasSak reports whether the entry is linked to the given fagsak
func (j *Journalpost) HasSak(fagsakID, fagsaksystem string) bool {
	return j.Sak != nil && j.Sak.FagsakID == fagsakID && j.Sak.Fagsaksystem == fagsaksystem
}

// SakUpdate carries the case-linkage fields applied to an existing entry
type SakUpdate struct {
	Tema                 string `json:"tema"`
	Bruker               Bruker `json:"bruker"`
	Sak                  Sak    `json:"sak"`
	Journalfoerendeenhet string `json:"journalfoerendeEnhet"`
}

// KnyttTilAnnenSakInput carries the fields for cloning a finalized entry
// onto another case
type KnyttTilAnnenSakInput struct {
	Tema                 string `json:"tema"`
	Bruker               Bruker `json:"bruker"`
	Sak                  Sak    `json:"sak"`
	Journalfoerendeenhet string `json:"journalfoerendeEnhet"`
}

// Client is the HTTP client against the document archive service
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewClient creates a configured archive client
func NewClient(baseURL, token string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		token:   token,
	}
}

// GetJournalpost fetches the current state of an archive entry. An unknown
// id returns nil without error.
func (c *Client) GetJournalpost(ctx context.Context, journalpostID string) (*Journalpost, error) {
	var journalpost Journalpost
	path := fmt.Sprintf("/rest/journalpostapi/v1/journalpost/%s", journalpostID)
	if err := c.do(ctx, http.MethodGet, path, nil, &journalpost); err != nil {
		var upstreamErr *upstream.Error
		if errors.As(err, &upstreamErr) && upstreamErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &journalpost, nil
}

// UpdateSak updates the case-linkage fields on an existing entry
func (c *Client) UpdateSak(ctx context.Context, journalpostID string, update SakUpdate) error {
	path := fmt.Sprintf("/rest/journalpostapi/v1/journalpost/%s", journalpostID)
	return c.do(ctx, http.MethodPut, path, update, nil)
}

// UpdateAvsender updates the sender on an existing entry
func (c *Client) UpdateAvsender(ctx context.Context, journalpostID string, avsender AvsenderMottaker) error {
	path := fmt.Sprintf("/rest/journalpostapi/v1/journalpost/%s/avsender", journalpostID)
	body := struct {
		AvsenderMottaker AvsenderMottaker `json:"avsenderMottaker"`
	}{AvsenderMottaker: avsender}
	return c.do(ctx, http.MethodPut, path, body, nil)
}

// Ferdigstill finalizes a received entry for the given unit
func (c *Client) Ferdigstill(ctx context.Context, journalpostID string, journalfoerendeEnhet string) error {
	path := fmt.Sprintf("/rest/journalpostapi/v1/journalpost/%s/ferdigstill", journalpostID)
	body := struct {
		JournalfoerendeEnhet string `json:"journalfoerendeEnhet"`
	}{JournalfoerendeEnhet: journalfoerendeEnhet}
	return c.do(ctx, http.MethodPatch, path, body, nil)
}

// KnyttTilAnnenSak creates a new archive entry cloned from the original,
// linked to the given case, and returns the new entry id
func (c *Client) KnyttTilAnnenSak(ctx context.Context, journalpostID string, input KnyttTilAnnenSakInput) (string, error) {
	var result struct {
		NyJournalpostID string `json:"nyJournalpostId"`
	}
	path := fmt.Sprintf("/rest/journalpostapi/v1/journalpost/%s/knyttTilAnnenSak", journalpostID)
	if err := c.do(ctx, http.MethodPut, path, input, &result); err != nil {
		return "", err
	}
	return result.NyJournalpostID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", systemName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return upstream.NewError(systemName, resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", systemName, err)
		}
	}

	return nil
}
