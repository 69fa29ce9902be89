package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"klage_registrering_go/models"

	"gorm.io/gorm"
)

// MulighetService resolves the opportunity (previously decided case) a draft
// references. The first resolution per (draft, mulighet) performs a
// source-specific fetch; the result is cached in the snapshot table so
// repeated edits do not re-fetch. The snapshot is read-only once stored.
type MulighetService struct {
	DB             *gorm.DB
	Saksbehandling SaksbehandlingClient
	Fagsystem      FagsystemClient
	Arkiv          ArkivClient
}

// NewMulighetService creates a mulighet resolver over the three source systems
func NewMulighetService(db *gorm.DB, saksbehandling SaksbehandlingClient, fagsystem FagsystemClient, arkiv ArkivClient) *MulighetService {
	return &MulighetService{DB: db, Saksbehandling: saksbehandling, Fagsystem: fagsystem, Arkiv: arkiv}
}

// Resolve returns the Mulighet the draft references, fetching and caching it
// on first access. Returns ErrMulighetNotFound when the draft references
// nothing or the source system does not know the id.
func (s *MulighetService) Resolve(ctx context.Context, r *models.Registrering) (*models.Mulighet, error) {
	if r.MulighetID == nil || *r.MulighetID == "" {
		return nil, ErrMulighetNotFound
	}
	mulighetID := *r.MulighetID

	// Cached snapshot from a previous edit of the same draft
	var snapshot models.MulighetSnapshot
	err := s.DB.Where("registrering_id = ? AND mulighet_id = ?", r.ID, mulighetID).
		First(&snapshot).Error
	if err == nil {
		var mulighet models.Mulighet
		if err := json.Unmarshal([]byte(snapshot.Payload), &mulighet); err != nil {
			return nil, fmt.Errorf("failed to decode cached mulighet: %w", err)
		}
		return &mulighet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to read mulighet snapshot: %w", err)
	}

	mulighet, err := s.fetch(ctx, r, mulighetID)
	if err != nil {
		return nil, err
	}
	if mulighet == nil {
		return nil, fmt.Errorf("mulighet %s: %w", mulighetID, ErrMulighetNotFound)
	}

	payload, err := json.Marshal(mulighet)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mulighet snapshot: %w", err)
	}
	cached := models.MulighetSnapshot{
		RegistreringID: r.ID,
		MulighetID:     mulighetID,
		Payload:        string(payload),
	}
	if err := s.DB.Create(&cached).Error; err != nil {
		// A concurrent request may have stored the snapshot already; the
		// fetched value is still valid
		var existing models.MulighetSnapshot
		if s.DB.Where("registrering_id = ? AND mulighet_id = ?", r.ID, mulighetID).
			First(&existing).Error != nil {
			return nil, fmt.Errorf("failed to store mulighet snapshot: %w", err)
		}
	}

	return mulighet, nil
}

func (s *MulighetService) fetch(ctx context.Context, r *models.Registrering, mulighetID string) (*models.Mulighet, error) {
	if r.MulighetBasedOnJournalpost {
		return s.fromJournalpost(ctx, mulighetID)
	}

	// The draft does not record which system the case currently lives in;
	// the processing backend is authoritative, the legacy proxy is the
	// fallback for cases never migrated
	mulighet, err := s.Saksbehandling.GetMulighet(ctx, mulighetID)
	if err != nil {
		return nil, err
	}
	if mulighet != nil {
		return mulighet, nil
	}
	return s.Fagsystem.GetMulighet(ctx, mulighetID)
}

// fromJournalpost derives a pseudo-opportunity when the draft was started
// directly from an archived document rather than a prior decision
func (s *MulighetService) fromJournalpost(ctx context.Context, journalpostID string) (*models.Mulighet, error) {
	journalpost, err := s.Arkiv.GetJournalpost(ctx, journalpostID)
	if err != nil {
		return nil, err
	}
	if journalpost == nil {
		return nil, nil
	}

	mulighet := &models.Mulighet{
		ID:                    journalpost.JournalpostID,
		OriginalFagsystem:     models.FagsystemKlageinstans,
		CurrentFagsystem:      models.FagsystemKlageinstans,
		KlageBehandlendeEnhet: journalpost.Journalfoerendeenhet,
	}
	if journalpost.Sak != nil {
		mulighet.SakID = journalpost.Sak.FagsakID
		mulighet.FagsakID = journalpost.Sak.FagsakID
		mulighet.CurrentFagsystem = journalpost.Sak.Fagsaksystem
	}
	if ytelse, ok := YtelseForTema(journalpost.Tema); ok {
		mulighet.YtelseID = ytelse.ID
	}
	if journalpost.Bruker != nil {
		partType := models.PartTypePerson
		if journalpost.Bruker.IDType == "ORGNR" {
			partType = models.PartTypeVirksomhet
		}
		mulighet.SakenGjelder = &models.MulighetPart{
			Part: models.Part{
				ID:        models.PartID{Type: partType, Value: journalpost.Bruker.ID},
				Available: true,
			},
		}
	}

	return mulighet, nil
}
