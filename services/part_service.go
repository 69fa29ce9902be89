package services

import (
	"context"
	"fmt"

	"klage_registrering_go/models"
)

// PartService resolves party identifiers through the identity directory,
// falling back on the case-processing backend for channel-aware lookups
type PartService struct {
	Persondata     PersondataClient
	Saksbehandling SaksbehandlingClient
}

// NewPartService creates a part resolver over the two lookup systems
func NewPartService(persondata PersondataClient, saksbehandling SaksbehandlingClient) *PartService {
	return &PartService{Persondata: persondata, Saksbehandling: saksbehandling}
}

// Resolve resolves an identifier into a display-ready party. The identity
// directory is asked first; identifiers it does not know are retried against
// the backend search API, which also covers parties only the case store
// knows. An unresolvable identifier returns ErrPartNotFound, never a crash.
func (s *PartService) Resolve(ctx context.Context, id models.PartID) (*models.Part, error) {
	var part *models.Part
	var err error

	switch id.Type {
	case models.PartTypePerson:
		part, err = s.Persondata.ResolvePerson(ctx, id.Value)
	case models.PartTypeVirksomhet:
		part, err = s.Persondata.ResolveOrganisasjon(ctx, id.Value)
	default:
		return nil, fmt.Errorf("unknown part type: %s", id.Type)
	}
	if err != nil {
		return nil, err
	}

	if part == nil {
		part, err = s.Saksbehandling.SearchPart(ctx, id.Value)
		if err != nil {
			return nil, err
		}
	}
	if part == nil {
		return nil, fmt.Errorf("identifier %s: %w", id.Value, ErrPartNotFound)
	}
	return part, nil
}

// ResolveWithUtsendingskanal resolves a party including its preferred
// distribution channel. The channel depends on both the benefit type and the
// case subject, so both are required context.
func (s *PartService) ResolveWithUtsendingskanal(ctx context.Context, id models.PartID, sakenGjelderValue, ytelseID string) (*models.Part, error) {
	part, err := s.Saksbehandling.SearchPartWithUtsendingskanal(ctx, id.Value, sakenGjelderValue, ytelseID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("identifier %s: %w", id.Value, ErrPartNotFound)
	}
	return part, nil
}
