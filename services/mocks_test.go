package services

import (
	"context"
	"time"

	"klage_registrering_go/models"
	"klage_registrering_go/services/arkiv"
	"klage_registrering_go/services/fagsystem"
	"klage_registrering_go/services/oppgave"
	"klage_registrering_go/services/saksbehandling"

	"github.com/stretchr/testify/mock"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Registrering{}, &models.Mottaker{}, &models.MulighetSnapshot{})
	return db
}

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

type MockArkivClient struct {
	mock.Mock
}

func (m *MockArkivClient) GetJournalpost(ctx context.Context, journalpostID string) (*arkiv.Journalpost, error) {
	args := m.Called(ctx, journalpostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*arkiv.Journalpost), args.Error(1)
}

func (m *MockArkivClient) UpdateSak(ctx context.Context, journalpostID string, update arkiv.SakUpdate) error {
	args := m.Called(ctx, journalpostID, update)
	return args.Error(0)
}

func (m *MockArkivClient) UpdateAvsender(ctx context.Context, journalpostID string, avsender arkiv.AvsenderMottaker) error {
	args := m.Called(ctx, journalpostID, avsender)
	return args.Error(0)
}

func (m *MockArkivClient) Ferdigstill(ctx context.Context, journalpostID string, journalfoerendeEnhet string) error {
	args := m.Called(ctx, journalpostID, journalfoerendeEnhet)
	return args.Error(0)
}

func (m *MockArkivClient) KnyttTilAnnenSak(ctx context.Context, journalpostID string, input arkiv.KnyttTilAnnenSakInput) (string, error) {
	args := m.Called(ctx, journalpostID, input)
	return args.String(0), args.Error(1)
}

type MockSaksbehandlingClient struct {
	mock.Mock
}

func (m *MockSaksbehandlingClient) CreateBehandling(ctx context.Context, input saksbehandling.CreateBehandlingInput) (*saksbehandling.CreatedBehandling, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*saksbehandling.CreatedBehandling), args.Error(1)
}

func (m *MockSaksbehandlingClient) IsDuplicateOppgave(ctx context.Context, oppgaveID string) (bool, error) {
	args := m.Called(ctx, oppgaveID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSaksbehandlingClient) SearchPart(ctx context.Context, identifikator string) (*models.Part, error) {
	args := m.Called(ctx, identifikator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockSaksbehandlingClient) SearchPartWithUtsendingskanal(ctx context.Context, identifikator, sakenGjelderValue, ytelseID string) (*models.Part, error) {
	args := m.Called(ctx, identifikator, sakenGjelderValue, ytelseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockSaksbehandlingClient) GetMulighet(ctx context.Context, mulighetID string) (*models.Mulighet, error) {
	args := m.Called(ctx, mulighetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mulighet), args.Error(1)
}

type MockFagsystemClient struct {
	mock.Mock
}

func (m *MockFagsystemClient) Search(ctx context.Context, identifikator, sakstype string) ([]fagsystem.Sak, error) {
	args := m.Called(ctx, identifikator, sakstype)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fagsystem.Sak), args.Error(1)
}

func (m *MockFagsystemClient) GetMulighet(ctx context.Context, mulighetID string) (*models.Mulighet, error) {
	args := m.Called(ctx, mulighetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mulighet), args.Error(1)
}

func (m *MockFagsystemClient) MarkHandled(ctx context.Context, sakID string, frist time.Time) error {
	args := m.Called(ctx, sakID, frist)
	return args.Error(0)
}

type MockOppgaveClient struct {
	mock.Mock
}

func (m *MockOppgaveClient) Get(ctx context.Context, oppgaveID string) (*oppgave.Oppgave, error) {
	args := m.Called(ctx, oppgaveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oppgave.Oppgave), args.Error(1)
}

func (m *MockOppgaveClient) Update(ctx context.Context, oppgaveID, tilordnetIdent, kommentar string) error {
	args := m.Called(ctx, oppgaveID, tilordnetIdent, kommentar)
	return args.Error(0)
}

type MockPartResolver struct {
	mock.Mock
}

func (m *MockPartResolver) Resolve(ctx context.Context, id models.PartID) (*models.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockPartResolver) ResolveWithUtsendingskanal(ctx context.Context, id models.PartID, sakenGjelderValue, ytelseID string) (*models.Part, error) {
	args := m.Called(ctx, id, sakenGjelderValue, ytelseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

type MockMulighetResolver struct {
	mock.Mock
}

func (m *MockMulighetResolver) Resolve(ctx context.Context, r *models.Registrering) (*models.Mulighet, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mulighet), args.Error(1)
}
