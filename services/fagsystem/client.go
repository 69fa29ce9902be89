package fagsystem

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

const systemName = "fagsystem"

// Sak is a decided case in the legacy case system
type Sak struct {
	SakID      string     `json:"sakId"`
	FagsakID   string     `json:"fagsakId"`
	Sakstype   string     `json:"sakstype"`
	YtelseID   string     `json:"ytelseId"`
	VedtakDate *time.Time `json:"vedtakDate,omitempty"`
}

// Client is the HTTP client against the legacy case-system proxy
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewClient creates a configured legacy-proxy client
func NewClient(baseURL, token string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		token:   token,
	}
}

// Search lists decided cases for an identifier and case kind
func (c *Client) Search(ctx context.Context, identifikator, sakstype string) ([]Sak, error) {
	params := url.Values{}
	params.Add("identifikator", identifikator)
	params.Add("sakstype", sakstype)

	var result struct {
		Saker []Sak `json:"saker"`
	}
	path := "/api/saker?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Saker, nil
}

// GetMulighet fetches a decided legacy case as a conversion opportunity.
// Returns nil when no such case exists.
func (c *Client) GetMulighet(ctx context.Context, mulighetID string) (*models.Mulighet, error) {
	path := fmt.Sprintf("/api/saker/%s", mulighetID)

	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, upstream.NewError(systemName, resp.StatusCode, respBody)
	}

	var mulighet models.Mulighet
	if err := json.NewDecoder(resp.Body).Decode(&mulighet); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", systemName, err)
	}
	return &mulighet, nil
}

// MarkHandled marks a legacy case as handled in the processing backend,
// recording the computed deadline
func (c *Client) MarkHandled(ctx context.Context, sakID string, frist time.Time) error {
	body := struct {
		Frist string `json:"frist"`
	}{Frist: frist.Format("2006-01-02")}

	path := fmt.Sprintf("/api/saker/%s/ferdigstill", sakID)
	return c.do(ctx, http.MethodPost, path, body, nil)
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
