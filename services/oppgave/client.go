package oppgave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"klage_registrering_go/services/upstream"
)

const systemName = "oppgave"

// Oppgave is a task in the task system
type Oppgave struct {
	ID             string     `json:"id"`
	Versjon        int        `json:"versjon"`
	Status         string     `json:"status"`
	Tema           string     `json:"tema"`
	Beskrivelse    string     `json:"beskrivelse"`
	TilordnetIdent *string    `json:"tilordnetRessurs,omitempty"`
	FristDate      *time.Time `json:"fristFerdigstillelse,omitempty"`
}

// UpdateInput carries the fields applied when a task is reassigned
type UpdateInput struct {
	Versjon        int    `json:"versjon"`
	TilordnetIdent string `json:"tilordnetRessurs"`
	Kommentar      string `json:"kommentar,omitempty"`
}

// Client is the HTTP client against the task system
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewClient creates a configured task-system client
func NewClient(baseURL, token string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		token:   token,
	}
}

// Get fetches a task by id
func (c *Client) Get(ctx context.Context, oppgaveID string) (*Oppgave, error) {
	var oppgave Oppgave
	path := fmt.Sprintf("/api/v1/oppgaver/%s", oppgaveID)
	if err := c.do(ctx, http.MethodGet, path, nil, &oppgave); err != nil {
		return nil, err
	}
	return &oppgave, nil
}

// Update reassigns a task to the given caseworker. The current version is
// fetched first since the task system rejects stale-version updates.
func (c *Client) Update(ctx context.Context, oppgaveID, tilordnetIdent, kommentar string) error {
	current, err := c.Get(ctx, oppgaveID)
	if err != nil {
		return err
	}

	input := UpdateInput{
		Versjon:        current.Versjon,
		TilordnetIdent: tilordnetIdent,
		Kommentar:      kommentar,
	}
	path := fmt.Sprintf("/api/v1/oppgaver/%s", oppgaveID)
	return c.do(ctx, http.MethodPatch, path, input, nil)
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
