package services

import (
	"context"
	"fmt"
	"time"

	"klage_registrering_go/models"
)

// ValidateRegistrering checks a draft plus its resolved opportunity for
// completeness before submission. Every rule is evaluated on every call;
// violations accumulate into named sections and are returned together as one
// *ValidationError, so the caller can show all problems at once. Only
// transport failures from the duplicate check return a plain error.
func ValidateRegistrering(ctx context.Context, checker DuplicateChecker, r *models.Registrering, mulighet *models.Mulighet) error {
	return validateRegistrering(ctx, checker, r, mulighet, time.Now())
}

func validateRegistrering(ctx context.Context, checker DuplicateChecker, r *models.Registrering, mulighet *models.Mulighet, now time.Time) error {
	var saksdata, svarbrev []InvalidProperty

	if r.YtelseID == nil || *r.YtelseID == "" {
		saksdata = append(saksdata, InvalidProperty{Field: "ytelseId", Reason: "benefit type must be chosen"})
	} else if !IsValidYtelse(*r.YtelseID) {
		saksdata = append(saksdata, InvalidProperty{Field: "ytelseId", Reason: fmt.Sprintf("unknown benefit type %s", *r.YtelseID)})
	}

	if r.TypeID == nil || *r.TypeID == "" {
		saksdata = append(saksdata, InvalidProperty{Field: "typeId", Reason: "case type must be chosen"})
	}

	if mulighet != nil && mulighet.IsFromInfotrygd() {
		if r.OppgaveID == nil || *r.OppgaveID == "" {
			saksdata = append(saksdata, InvalidProperty{Field: "oppgaveId", Reason: "a task is required when the case originates in the legacy system"})
		}
	}

	hjemler := r.Hjemler()
	if len(hjemler) == 0 {
		saksdata = append(saksdata, InvalidProperty{Field: "hjemmelIdList", Reason: "at least one statutory ground is required"})
	}
	for _, hjemmelID := range hjemler {
		if !IsValidHjemmel(hjemmelID) {
			saksdata = append(saksdata, InvalidProperty{Field: "hjemmelIdList", Reason: fmt.Sprintf("unknown statutory ground %s", hjemmelID)})
		}
	}

	if r.MottattKlageinstans == nil {
		saksdata = append(saksdata, InvalidProperty{Field: "mottattKlageinstans", Reason: "date received at appeal instance is required"})
	} else if r.MottattKlageinstans.After(now) {
		saksdata = append(saksdata, InvalidProperty{Field: "mottattKlageinstans", Reason: "date received at appeal instance cannot be in the future"})
	}

	if r.TypeID != nil && *r.TypeID == models.TypeKlage {
		if r.MottattVedtaksinstans == nil {
			saksdata = append(saksdata, InvalidProperty{Field: "mottattVedtaksinstans", Reason: "date received at first instance is required for klage"})
		} else {
			if r.MottattVedtaksinstans.After(now) {
				saksdata = append(saksdata, InvalidProperty{Field: "mottattVedtaksinstans", Reason: "date received at first instance cannot be in the future"})
			}
			if r.MottattKlageinstans != nil && r.MottattVedtaksinstans.After(*r.MottattKlageinstans) {
				saksdata = append(saksdata, InvalidProperty{Field: "mottattVedtaksinstans", Reason: "date received at first instance must be on or before date received at appeal instance"})
			}
		}
	}

	if r.Klager() == nil {
		saksdata = append(saksdata, InvalidProperty{Field: "klager", Reason: "complainant is required"})
	}

	if r.JournalpostID == nil || *r.JournalpostID == "" {
		saksdata = append(saksdata, InvalidProperty{Field: "journalpostId", Reason: "journalpost is required"})
	}

	if r.SendSvarbrev && len(r.Mottakere) == 0 {
		svarbrev = append(svarbrev, InvalidProperty{Field: "mottakere", Reason: "at least one receiver is required when the notification letter is sent"})
	}

	if r.OppgaveID != nil && *r.OppgaveID != "" {
		duplicate, err := checker.IsDuplicateOppgave(ctx, *r.OppgaveID)
		if err != nil {
			return fmt.Errorf("duplicate check for oppgave %s failed: %w", *r.OppgaveID, err)
		}
		if duplicate {
			saksdata = append(saksdata, InvalidProperty{Field: "oppgaveId", Reason: "the task is already attached to another open case"})
		}
	}

	var sections []ValidationSection
	if len(saksdata) > 0 {
		sections = append(sections, ValidationSection{Section: SectionSaksdata, Properties: saksdata})
	}
	if len(svarbrev) > 0 {
		sections = append(sections, ValidationSection{Section: SectionSvarbrev, Properties: svarbrev})
	}
	if len(sections) > 0 {
		return &ValidationError{Sections: sections}
	}
	return nil
}
