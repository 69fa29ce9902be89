package services

import (
	"context"
	"fmt"

	"klage_registrering_go/models"
	"klage_registrering_go/services/arkiv"
)

// FinalizeJournalpost brings the archive entry referenced by the draft into
// a state where the new case can reference it, and returns the journalpost
// id the case must use (the original, or a new clone).
//
// Observed entry states map to exactly one outcome:
//   - MOTTATT with a sender on record: update case linkage, finalize.
//   - MOTTATT without sender and without override: fatal, nothing is mutated.
//   - MOTTATT with an override in the draft: update sender first, then
//     case linkage, then finalize.
//   - Already finalized and linked to the target case: no mutation, apart
//     from an optional sender update when an override is set.
//   - Already finalized but linked to a different case: clone onto the
//     target case; an override is applied to the clone.
//
// The sender override is resolved before any branch since it determines the
// sender value used in both the finalize and the clone path. Finalized
// entries are never re-finalized.
func FinalizeJournalpost(ctx context.Context, arkivClient ArkivClient, parts PartResolver, r *models.Registrering, mulighet *models.Mulighet) (string, error) {
	if r.JournalpostID == nil || *r.JournalpostID == "" {
		return "", fmt.Errorf("registrering %s has no journalpost", r.ID)
	}

	journalpost, err := arkivClient.GetJournalpost(ctx, *r.JournalpostID)
	if err != nil {
		return "", err
	}
	if journalpost == nil {
		return "", fmt.Errorf("journalpost %s not found in the archive", *r.JournalpostID)
	}

	avsender, err := resolveAvsenderOverride(ctx, parts, r)
	if err != nil {
		return "", err
	}

	tema := ""
	if r.YtelseID != nil {
		if ytelse, ok := GetYtelse(*r.YtelseID); ok {
			tema = ytelse.Tema
		}
	}

	bruker := brukerFor(r, mulighet)
	sak := arkiv.Sak{
		FagsakID:     mulighet.FagsakID,
		Fagsaksystem: mulighet.CurrentFagsystem,
		Sakstype:     "FAGSAK",
	}
	enhet := mulighet.KlageBehandlendeEnhet

	switch {
	case journalpost.Journalstatus == arkiv.JournalstatusMottatt:
		if journalpost.AvsenderMottaker == nil && avsender == nil {
			return "", fmt.Errorf("journalpost %s: %w", journalpost.JournalpostID, ErrAvsenderRequired)
		}
		if avsender != nil {
			if err := arkivClient.UpdateAvsender(ctx, journalpost.JournalpostID, *avsender); err != nil {
				return "", err
			}
		}
		update := arkiv.SakUpdate{
			Tema:                 tema,
			Bruker:               bruker,
			Sak:                  sak,
			Journalfoerendeenhet: enhet,
		}
		if err := arkivClient.UpdateSak(ctx, journalpost.JournalpostID, update); err != nil {
			return "", err
		}
		if err := arkivClient.Ferdigstill(ctx, journalpost.JournalpostID, enhet); err != nil {
			return "", err
		}
		return journalpost.JournalpostID, nil

	case journalpost.IsFinalized():
		if journalpost.HasSak(sak.FagsakID, sak.Fagsaksystem) {
			if avsender != nil {
				if err := arkivClient.UpdateAvsender(ctx, journalpost.JournalpostID, *avsender); err != nil {
					return "", err
				}
			}
			return journalpost.JournalpostID, nil
		}

		// Locked to a different case; a finalized entry cannot be moved in
		// place, so a new entry is cloned onto the target case
		input := arkiv.KnyttTilAnnenSakInput{
			Tema:                 tema,
			Bruker:               bruker,
			Sak:                  sak,
			Journalfoerendeenhet: enhet,
		}
		newID, err := arkivClient.KnyttTilAnnenSak(ctx, journalpost.JournalpostID, input)
		if err != nil {
			return "", err
		}
		if avsender != nil {
			if err := arkivClient.UpdateAvsender(ctx, newID, *avsender); err != nil {
				return "", err
			}
		}
		return newID, nil
	}

	return "", fmt.Errorf("journalpost %s has status %s and cannot be used", journalpost.JournalpostID, journalpost.Journalstatus)
}

// resolveAvsenderOverride resolves the draft's sender override, if any, into
// the archive representation. Resolution happens before branching since the
// override applies to whichever entry ends up carrying the document.
func resolveAvsenderOverride(ctx context.Context, parts PartResolver, r *models.Registrering) (*arkiv.AvsenderMottaker, error) {
	override := r.Avsender()
	if override == nil {
		return nil, nil
	}

	part, err := parts.Resolve(ctx, *override)
	if err != nil {
		return nil, err
	}

	idType := "FNR"
	if override.Type == models.PartTypeVirksomhet {
		idType = "ORGNR"
	}
	return &arkiv.AvsenderMottaker{
		ID:     override.Value,
		IDType: idType,
		Navn:   part.Name,
	}, nil
}

func brukerFor(r *models.Registrering, mulighet *models.Mulighet) arkiv.Bruker {
	subject := r.SakenGjelder()
	if subject == nil && mulighet.SakenGjelder != nil {
		id := mulighet.SakenGjelder.Part.ID
		subject = &id
	}
	if subject == nil {
		return arkiv.Bruker{}
	}

	idType := "FNR"
	if subject.Type == models.PartTypeVirksomhet {
		idType = "ORGNR"
	}
	return arkiv.Bruker{ID: subject.Value, IDType: idType}
}
