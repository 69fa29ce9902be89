package persondata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"klage_registrering_go/models"
	"klage_registrering_go/services/upstream"
)

const systemName = "persondata"

// Client is the HTTP client against the identity directory. Person lookups
// go through a GraphQL endpoint; organization lookups through REST.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewClient creates a configured identity-directory client
func NewClient(baseURL, token string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		token:   token,
	}
}

const personQuery = `query($ident: ID!) {
  hentPerson(ident: $ident) {
    navn { fornavn mellomnavn etternavn }
    doedsfall { doedsdato }
    vergemaalEllerFremtidsfullmakt { type }
    adressebeskyttelse { gradering }
  }
}`

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type personResponse struct {
	Data struct {
		HentPerson *struct {
			Navn []struct {
				Fornavn    string  `json:"fornavn"`
				Mellomnavn *string `json:"mellomnavn"`
				Etternavn  string  `json:"etternavn"`
			} `json:"navn"`
			Doedsfall []struct {
				Doedsdato *string `json:"doedsdato"`
			} `json:"doedsfall"`
			VergemaalEllerFremtidsfullmakt []struct {
				Type string `json:"type"`
			} `json:"vergemaalEllerFremtidsfullmakt"`
			Adressebeskyttelse []struct {
				Gradering string `json:"gradering"`
			} `json:"adressebeskyttelse"`
		} `json:"hentPerson"`
	} `json:"data"`
	Errors []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code string `json:"code"`
		} `json:"extensions"`
	} `json:"errors"`
}

// ResolvePerson resolves a national id into a party.
// Returns nil when the identity directory does not know the person.
func (c *Client) ResolvePerson(ctx context.Context, ident string) (*models.Part, error) {
	reqBody, err := json.Marshal(graphqlRequest{
		Query:     personQuery,
		Variables: map[string]interface{}{"ident": ident},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", systemName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, upstream.NewError(systemName, resp.StatusCode, respBody)
	}

	var result personResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", systemName, err)
	}

	for _, gqlErr := range result.Errors {
		if gqlErr.Extensions.Code == "not_found" {
			return nil, nil
		}
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%s query failed: %s", systemName, result.Errors[0].Message)
	}
	if result.Data.HentPerson == nil {
		return nil, nil
	}

	person := result.Data.HentPerson

	name := ""
	if len(person.Navn) > 0 {
		n := person.Navn[0]
		name = n.Fornavn
		if n.Mellomnavn != nil && *n.Mellomnavn != "" {
			name += " " + *n.Mellomnavn
		}
		name += " " + n.Etternavn
	}

	part := &models.Part{
		ID:        models.PartID{Type: models.PartTypePerson, Value: ident},
		Name:      name,
		Available: true,
	}

	for _, d := range person.Doedsfall {
		status := models.PartStatus{Status: models.PartStatusDead}
		if d.Doedsdato != nil {
			if parsed, err := time.Parse("2006-01-02", *d.Doedsdato); err == nil {
				status.Date = &parsed
			}
		}
		part.Statuses = append(part.Statuses, status)
		part.Available = false
	}
	if len(person.VergemaalEllerFremtidsfullmakt) > 0 {
		part.Statuses = append(part.Statuses, models.PartStatus{Status: models.PartStatusVergemaal})
	}
	for _, a := range person.Adressebeskyttelse {
		switch a.Gradering {
		case "FORTROLIG":
			part.Statuses = append(part.Statuses, models.PartStatus{Status: models.PartStatusFortrolig})
		case "STRENGT_FORTROLIG", "STRENGT_FORTROLIG_UTLAND":
			part.Statuses = append(part.Statuses, models.PartStatus{Status: models.PartStatusStrengtFortrolig})
		}
	}

	return part, nil
}

type organisasjonResponse struct {
	Organisasjonsnummer string `json:"organisasjonsnummer"`
	Navn                struct {
		Sammensattnavn string `json:"sammensattnavn"`
	} `json:"navn"`
	Slettedato *string `json:"slettedato,omitempty"`
}

// ResolveOrganisasjon resolves an org number into a party.
// Returns nil when the registry does not know the organization.
func (c *Client) ResolveOrganisasjon(ctx context.Context, orgnr string) (*models.Part, error) {
	path := fmt.Sprintf("/api/v2/organisasjon/%s", orgnr)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", systemName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, upstream.NewError(systemName, resp.StatusCode, respBody)
	}

	var org organisasjonResponse
	if err := json.NewDecoder(resp.Body).Decode(&org); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", systemName, err)
	}

	part := &models.Part{
		ID:        models.PartID{Type: models.PartTypeVirksomhet, Value: org.Organisasjonsnummer},
		Name:      org.Navn.Sammensattnavn,
		Available: org.Slettedato == nil,
	}
	if org.Slettedato != nil {
		part.Statuses = append(part.Statuses, models.PartStatus{Status: models.PartStatusDeleted})
	}

	return part, nil
}
