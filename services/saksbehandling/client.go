package saksbehandling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"klage_registrering_go/models"
	"klage_registrering_go/services/upstream"
)

const systemName = "saksbehandling"

// PartIDInput is a tagged party identifier on an outbound request
type PartIDInput struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// AddressInput is a receiver address override on an outbound request
type AddressInput struct {
	AddressLine1 *string `json:"adresselinje1,omitempty"`
	AddressLine2 *string `json:"adresselinje2,omitempty"`
	AddressLine3 *string `json:"adresselinje3,omitempty"`
	Postnummer   *string `json:"postnummer,omitempty"`
	Landkode     string  `json:"landkode"`
}

// SvarbrevReceiverInput is a resolved notification-letter receiver
type SvarbrevReceiverInput struct {
	Part            PartIDInput   `json:"part"`
	Handling        string        `json:"handling"`
	OverrideAddress *AddressInput `json:"overrideAddress,omitempty"`
}

// SvarbrevInput is the notification-letter payload sent with case creation
type SvarbrevInput struct {
	Title                    string                  `json:"title"`
	CustomText               *string                 `json:"customText,omitempty"`
	FullmektigFritekst       *string                 `json:"fullmektigFritekst,omitempty"`
	Receivers                []SvarbrevReceiverInput `json:"receivers"`
	BehandlingstidUnits      int                     `json:"varsletBehandlingstidUnits"`
	BehandlingstidUnitTypeID string                  `json:"varsletBehandlingstidUnitTypeId"`
}

// CreateBehandlingInput is the case-creation request body
type CreateBehandlingInput struct {
	TypeID                  string         `json:"typeId"`
	SakenGjelder            PartIDInput    `json:"sakenGjelder"`
	Klager                  PartIDInput    `json:"klager"`
	Fullmektig              *PartIDInput   `json:"fullmektig,omitempty"`
	FagsakID                string         `json:"fagsakId"`
	Fagsystem               string         `json:"fagsystem"`
	JournalpostID           string         `json:"journalpostId"`
	MottattVedtaksinstans   *string        `json:"mottattVedtaksinstans,omitempty"`
	MottattKlageinstans     string         `json:"mottattKlageinstans"`
	Frist                   string         `json:"frist"`
	YtelseID                string         `json:"ytelseId"`
	HjemmelIDList           []string       `json:"hjemmelIdList"`
	ForrigeBehandlendeEnhet string         `json:"forrigeBehandlendeEnhet"`
	SaksbehandlerIdent      *string        `json:"saksbehandlerIdent,omitempty"`
	OppgaveID               *string        `json:"oppgaveId,omitempty"`
	Svarbrev                *SvarbrevInput `json:"svarbrev,omitempty"`
}

// CreatedBehandling is the case-creation response
type CreatedBehandling struct {
	BehandlingID string `json:"behandlingId"`
}

// Client is the HTTP client against the case-processing backend
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewClient creates a configured case-processing backend client
func NewClient(baseURL, token string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		token:   token,
	}
}

// CreateBehandling creates a case of the given type and returns its id
func (c *Client) CreateBehandling(ctx context.Context, input CreateBehandlingInput) (*CreatedBehandling, error) {
	var created CreatedBehandling
	if err := c.do(ctx, http.MethodPost, "/api/behandlinger", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// IsDuplicateOppgave reports whether the task id is already attached to
// another open case in the backend
func (c *Client) IsDuplicateOppgave(ctx context.Context, oppgaveID string) (bool, error) {
	var result struct {
		Duplicate bool `json:"duplicate"`
	}
	path := "/api/oppgaver/duplikatsjekk?" + url.Values{"oppgaveId": {oppgaveID}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return false, err
	}
	return result.Duplicate, nil
}

// SearchPart resolves a party through the backend search API.
// Returns nil when the identifier resolves to no known party.
func (c *Client) SearchPart(ctx context.Context, identifikator string) (*models.Part, error) {
	body := struct {
		Identifikator string `json:"identifikator"`
	}{Identifikator: identifikator}

	var part models.Part
	found, err := c.doLookup(ctx, "/api/searchpart", body, &part)
	if err != nil || !found {
		return nil, err
	}
	return &part, nil
}

// SearchPartWithUtsendingskanal resolves a party including its preferred
// distribution channel, which depends on the benefit type and case subject.
// Returns nil when the identifier resolves to no known party.
func (c *Client) SearchPartWithUtsendingskanal(ctx context.Context, identifikator, sakenGjelderValue, ytelseID string) (*models.Part, error) {
	body := struct {
		Identifikator     string `json:"identifikator"`
		SakenGjelderValue string `json:"sakenGjelderValue"`
		YtelseID          string `json:"ytelseId"`
	}{Identifikator: identifikator, SakenGjelderValue: sakenGjelderValue, YtelseID: ytelseID}

	var part models.Part
	found, err := c.doLookup(ctx, "/api/searchpartwithutsendingskanal", body, &part)
	if err != nil || !found {
		return nil, err
	}
	return &part, nil
}

// GetMulighet fetches a previously decided case from the backend.
// Returns nil when no such case exists.
func (c *Client) GetMulighet(ctx context.Context, mulighetID string) (*models.Mulighet, error) {
	var mulighet models.Mulighet
	path := fmt.Sprintf("/api/muligheter/%s", mulighetID)
	found, err := c.doLookup(ctx, path, nil, &mulighet)
	if err != nil || !found {
		return nil, err
	}
	return &mulighet, nil
}

// doLookup performs a request where 404 means "not found" rather than failure.
// Returns false when the resource does not exist.
func (c *Client) doLookup(ctx context.Context, path string, body, out interface{}) (bool, error) {
	method := http.MethodGet
	if body != nil {
		method = http.MethodPost
	}

	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return false, upstream.NewError(systemName, resp.StatusCode, respBody)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode %s response: %w", systemName, err)
	}
	return true, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
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

func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", systemName, err)
	}
	return resp, nil
}
