package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"klage_registrering_go/models"
	"klage_registrering_go/services/saksbehandling"

	"gorm.io/gorm"
)

// FerdigstillService turns a validated draft into a case in the processing
// backend. Step order is strict: resolve mulighet, validate, settle the
// archive entry, create the case. Only then run the best-effort side
// effects, which never influence the outcome.
type FerdigstillService struct {
	DB             *gorm.DB
	Arkiv          ArkivClient
	Saksbehandling SaksbehandlingClient
	Fagsystem      FagsystemClient
	Oppgave        OppgaveClient
	Parter         PartResolver
	Muligheter     MulighetResolver
}

// NewFerdigstillService wires the submission orchestrator
func NewFerdigstillService(db *gorm.DB, arkivClient ArkivClient, saksbehandlingClient SaksbehandlingClient, fagsystemClient FagsystemClient, oppgaveClient OppgaveClient, parter PartResolver, muligheter MulighetResolver) *FerdigstillService {
	return &FerdigstillService{
		DB:             db,
		Arkiv:          arkivClient,
		Saksbehandling: saksbehandlingClient,
		Fagsystem:      fagsystemClient,
		Oppgave:        oppgaveClient,
		Parter:         parter,
		Muligheter:     muligheter,
	}
}

// FerdigResult is what a successful submission returns
type FerdigResult struct {
	RegistreringID string    `json:"registrering_id"`
	BehandlingID   string    `json:"behandling_id"`
	JournalpostID  string    `json:"journalpost_id"`
	Frist          time.Time `json:"frist"`
	FinishedAt     time.Time `json:"finished_at"`
}

// Ferdigstill submits the draft as a case of its chosen type. Validation and
// archive errors abort before any case is created; once the backend has
// created the case, nothing can fail the operation anymore.
func (s *FerdigstillService) Ferdigstill(ctx context.Context, registreringID string) (*FerdigResult, error) {
	var r models.Registrering
	if err := s.DB.Preload("Mottakere").First(&r, "id = ?", registreringID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistreringNotFound
		}
		return nil, fmt.Errorf("failed to load registrering: %w", err)
	}
	if r.IsFinished() {
		return nil, ErrRegistreringFinished
	}

	mulighet, err := s.Muligheter.Resolve(ctx, &r)
	if err != nil {
		return nil, err
	}

	if err := ValidateRegistrering(ctx, s.Saksbehandling, &r, mulighet); err != nil {
		return nil, err
	}

	journalpostID, err := FinalizeJournalpost(ctx, s.Arkiv, s.Parter, &r, mulighet)
	if err != nil {
		return nil, err
	}

	frist, err := CalculateFrist(*r.MottattKlageinstans, r.BehandlingstidUnits, r.BehandlingstidUnitTypeID)
	if err != nil {
		return nil, err
	}

	input, err := s.buildInput(ctx, &r, mulighet, journalpostID, frist)
	if err != nil {
		return nil, err
	}

	created, err := s.Saksbehandling.CreateBehandling(ctx, *input)
	if err != nil {
		return nil, err
	}

	// Best-effort side effects. The case exists now; failures here are
	// logged and swallowed, never surfaced.
	if mulighet.IsFromInfotrygd() {
		if err := s.Fagsystem.MarkHandled(ctx, mulighet.SakID, frist); err != nil {
			log.Printf("[ERROR] failed to mark legacy case %s as handled: %v", mulighet.SakID, err)
		}
	}
	if r.OppgaveID != nil && *r.OppgaveID != "" {
		assignee := ""
		if r.SaksbehandlerIdent != nil {
			assignee = *r.SaksbehandlerIdent
		}
		kommentar := fmt.Sprintf("Registrert som behandling %s", created.BehandlingID)
		if err := s.Oppgave.Update(ctx, *r.OppgaveID, assignee, kommentar); err != nil {
			log.Printf("[ERROR] failed to update oppgave %s: %v", *r.OppgaveID, err)
		}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"finished_at":    now,
		"behandling_id":  created.BehandlingID,
		"journalpost_id": journalpostID,
	}
	if err := s.DB.Model(&r).Updates(updates).Error; err != nil {
		// The case exists in the backend; losing the local mark is an
		// operational problem, not a failed submission
		log.Printf("[ERROR] failed to mark registrering %s as finished (behandling %s): %v", r.ID, created.BehandlingID, err)
	}

	return &FerdigResult{
		RegistreringID: r.ID,
		BehandlingID:   created.BehandlingID,
		JournalpostID:  journalpostID,
		Frist:          frist,
		FinishedAt:     now,
	}, nil
}

// Valider runs the full validation for a draft without submitting it
func (s *FerdigstillService) Valider(ctx context.Context, registreringID string) error {
	var r models.Registrering
	if err := s.DB.Preload("Mottakere").First(&r, "id = ?", registreringID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistreringNotFound
		}
		return fmt.Errorf("failed to load registrering: %w", err)
	}
	if r.IsFinished() {
		return ErrRegistreringFinished
	}

	mulighet, err := s.Muligheter.Resolve(ctx, &r)
	if err != nil {
		return err
	}
	return ValidateRegistrering(ctx, s.Saksbehandling, &r, mulighet)
}

// buildInput assembles the case-creation request for the draft's case type.
// The case types are a closed set; dispatch happens here rather than through
// open-ended polymorphism.
func (s *FerdigstillService) buildInput(ctx context.Context, r *models.Registrering, mulighet *models.Mulighet, journalpostID string, frist time.Time) (*saksbehandling.CreateBehandlingInput, error) {
	if r.TypeID == nil {
		return nil, fmt.Errorf("registrering %s has no case type", r.ID)
	}

	switch *r.TypeID {
	case models.TypeKlage:
		return s.buildKlageInput(ctx, r, mulighet, journalpostID, frist)
	case models.TypeAnke:
		return s.buildAnkeInput(ctx, r, mulighet, journalpostID, frist)
	case models.TypeOmgjoeringskrav:
		return s.buildOmgjoeringskravInput(ctx, r, mulighet, journalpostID, frist)
	}
	return nil, fmt.Errorf("unsupported case type: %s", *r.TypeID)
}

func (s *FerdigstillService) buildKlageInput(ctx context.Context, r *models.Registrering, mulighet *models.Mulighet, journalpostID string, frist time.Time) (*saksbehandling.CreateBehandlingInput, error) {
	input, err := s.buildCommonInput(ctx, r, mulighet, journalpostID, frist)
	if err != nil {
		return nil, err
	}
	input.TypeID = models.TypeKlage
	vedtaksinstans := FormatDate(*r.MottattVedtaksinstans)
	input.MottattVedtaksinstans = &vedtaksinstans
	return input, nil
}

func (s *FerdigstillService) buildAnkeInput(ctx context.Context, r *models.Registrering, mulighet *models.Mulighet, journalpostID string, frist time.Time) (*saksbehandling.CreateBehandlingInput, error) {
	input, err := s.buildCommonInput(ctx, r, mulighet, journalpostID, frist)
	if err != nil {
		return nil, err
	}
	input.TypeID = models.TypeAnke
	return input, nil
}

func (s *FerdigstillService) buildOmgjoeringskravInput(ctx context.Context, r *models.Registrering, mulighet *models.Mulighet, journalpostID string, frist time.Time) (*saksbehandling.CreateBehandlingInput, error) {
	input, err := s.buildCommonInput(ctx, r, mulighet, journalpostID, frist)
	if err != nil {
		return nil, err
	}
	input.TypeID = models.TypeOmgjoeringskrav
	return input, nil
}

func (s *FerdigstillService) buildCommonInput(ctx context.Context, r *models.Registrering, mulighet *models.Mulighet, journalpostID string, frist time.Time) (*saksbehandling.CreateBehandlingInput, error) {
	sakenGjelder := r.SakenGjelder()
	if sakenGjelder == nil && mulighet.SakenGjelder != nil {
		id := mulighet.SakenGjelder.Part.ID
		sakenGjelder = &id
	}
	if sakenGjelder == nil {
		return nil, fmt.Errorf("registrering %s has no case subject", r.ID)
	}

	klager := r.Klager()

	input := &saksbehandling.CreateBehandlingInput{
		SakenGjelder:            partIDInput(*sakenGjelder),
		Klager:                  partIDInput(*klager),
		FagsakID:                mulighet.FagsakID,
		Fagsystem:               mulighet.CurrentFagsystem,
		JournalpostID:           journalpostID,
		MottattKlageinstans:     FormatDate(*r.MottattKlageinstans),
		Frist:                   FormatDate(frist),
		YtelseID:                derefOr(r.YtelseID, mulighet.YtelseID),
		HjemmelIDList:           r.Hjemler(),
		ForrigeBehandlendeEnhet: mulighet.KlageBehandlendeEnhet,
		SaksbehandlerIdent:      r.SaksbehandlerIdent,
		OppgaveID:               r.OppgaveID,
	}
	if fullmektig := r.Fullmektig(); fullmektig != nil {
		f := partIDInput(*fullmektig)
		input.Fullmektig = &f
	}

	if r.SendSvarbrev {
		svarbrev, err := s.buildSvarbrevInput(ctx, r, *sakenGjelder)
		if err != nil {
			return nil, err
		}
		input.Svarbrev = svarbrev
	}

	return input, nil
}

// buildSvarbrevInput resolves every receiver with channel awareness and
// assembles the notification-letter payload
func (s *FerdigstillService) buildSvarbrevInput(ctx context.Context, r *models.Registrering, sakenGjelder models.PartID) (*saksbehandling.SvarbrevInput, error) {
	ytelseID := ""
	if r.YtelseID != nil {
		ytelseID = *r.YtelseID
	}

	receivers := make([]saksbehandling.SvarbrevReceiverInput, 0, len(r.Mottakere))
	for _, mottaker := range r.Mottakere {
		part, err := s.Parter.ResolveWithUtsendingskanal(ctx, mottaker.PartID(), sakenGjelder.Value, ytelseID)
		if err != nil {
			return nil, err
		}

		receiver := saksbehandling.SvarbrevReceiverInput{
			Part:     saksbehandling.PartIDInput{Type: part.ID.Type, Value: part.ID.Value},
			Handling: mottaker.Handling,
		}
		if mottaker.HasAddressOverride() {
			landkode := "NO"
			if mottaker.Landkode != nil {
				landkode = *mottaker.Landkode
			}
			receiver.OverrideAddress = &saksbehandling.AddressInput{
				AddressLine1: mottaker.AddressLine1,
				AddressLine2: mottaker.AddressLine2,
				AddressLine3: mottaker.AddressLine3,
				Postnummer:   mottaker.Postnummer,
				Landkode:     landkode,
			}
		}
		receivers = append(receivers, receiver)
	}

	units := r.BehandlingstidUnits
	unitTypeID := r.BehandlingstidUnitTypeID
	if r.OverrideSvarbrevBehandlingstid && r.SvarbrevBehandlingstidUnits != nil && r.SvarbrevBehandlingstidUnitTypeID != nil {
		units = *r.SvarbrevBehandlingstidUnits
		unitTypeID = *r.SvarbrevBehandlingstidUnitTypeID
	}

	svarbrev := &saksbehandling.SvarbrevInput{
		Title:                    r.SvarbrevTitle,
		FullmektigFritekst:       r.SvarbrevFullmektigFritekst,
		Receivers:                receivers,
		BehandlingstidUnits:      units,
		BehandlingstidUnitTypeID: unitTypeID,
	}
	if r.OverrideSvarbrevCustomText {
		svarbrev.CustomText = r.SvarbrevCustomText
	}
	return svarbrev, nil
}

func partIDInput(id models.PartID) saksbehandling.PartIDInput {
	return saksbehandling.PartIDInput{Type: id.Type, Value: id.Value}
}

func derefOr(value *string, fallback string) string {
	if value != nil && *value != "" {
		return *value
	}
	return fallback
}
