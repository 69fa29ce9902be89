package services

import (
	"context"
	"time"

	"klage_registrering_go/models"
	"klage_registrering_go/services/arkiv"
	"klage_registrering_go/services/fagsystem"
	"klage_registrering_go/services/oppgave"
	"klage_registrering_go/services/saksbehandling"
)

// Narrow interfaces over the external-system clients. The HTTP
// implementations live in the subpackages; orchestration code only depends
// on these, so tests can substitute mocks.

// ArkivClient is the document archive service
type ArkivClient interface {
	GetJournalpost(ctx context.Context, journalpostID string) (*arkiv.Journalpost, error)
	UpdateSak(ctx context.Context, journalpostID string, update arkiv.SakUpdate) error
	UpdateAvsender(ctx context.Context, journalpostID string, avsender arkiv.AvsenderMottaker) error
	Ferdigstill(ctx context.Context, journalpostID string, journalfoerendeEnhet string) error
	KnyttTilAnnenSak(ctx context.Context, journalpostID string, input arkiv.KnyttTilAnnenSakInput) (string, error)
}

// SaksbehandlingClient is the case-processing backend
type SaksbehandlingClient interface {
	CreateBehandling(ctx context.Context, input saksbehandling.CreateBehandlingInput) (*saksbehandling.CreatedBehandling, error)
	IsDuplicateOppgave(ctx context.Context, oppgaveID string) (bool, error)
	SearchPart(ctx context.Context, identifikator string) (*models.Part, error)
	SearchPartWithUtsendingskanal(ctx context.Context, identifikator, sakenGjelderValue, ytelseID string) (*models.Part, error)
	GetMulighet(ctx context.Context, mulighetID string) (*models.Mulighet, error)
}

// FagsystemClient is the legacy case-system proxy
type FagsystemClient interface {
	Search(ctx context.Context, identifikator, sakstype string) ([]fagsystem.Sak, error)
	GetMulighet(ctx context.Context, mulighetID string) (*models.Mulighet, error)
	MarkHandled(ctx context.Context, sakID string, frist time.Time) error
}

// OppgaveClient is the task system
type OppgaveClient interface {
	Get(ctx context.Context, oppgaveID string) (*oppgave.Oppgave, error)
	Update(ctx context.Context, oppgaveID, tilordnetIdent, kommentar string) error
}

// PersondataClient is the identity directory
type PersondataClient interface {
	ResolvePerson(ctx context.Context, ident string) (*models.Part, error)
	ResolveOrganisasjon(ctx context.Context, orgnr string) (*models.Part, error)
}

// DuplicateChecker is the slice of the backend the validation engine needs
type DuplicateChecker interface {
	IsDuplicateOppgave(ctx context.Context, oppgaveID string) (bool, error)
}

// PartResolver resolves party identifiers into display-ready parties
type PartResolver interface {
	Resolve(ctx context.Context, id models.PartID) (*models.Part, error)
	ResolveWithUtsendingskanal(ctx context.Context, id models.PartID, sakenGjelderValue, ytelseID string) (*models.Part, error)
}

// MulighetResolver resolves and caches the opportunity a draft references
type MulighetResolver interface {
	Resolve(ctx context.Context, r *models.Registrering) (*models.Mulighet, error)
}
