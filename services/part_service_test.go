package services

import (
	"context"
	"errors"
	"testing"

	"klage_registrering_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPersondataClient struct {
	mock.Mock
}

func (m *mockPersondataClient) ResolvePerson(ctx context.Context, ident string) (*models.Part, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *mockPersondataClient) ResolveOrganisasjon(ctx context.Context, orgnr string) (*models.Part, error) {
	args := m.Called(ctx, orgnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func TestResolveDispatchesOnPartType(t *testing.T) {
	persondata := new(mockPersondataClient)
	service := NewPartService(persondata, new(MockSaksbehandlingClient))

	persondata.On("ResolvePerson", mock.Anything, "12345678910").Return(&models.Part{Name: "Ola Nordmann"}, nil)
	persondata.On("ResolveOrganisasjon", mock.Anything, "987654321").Return(&models.Part{Name: "Advokatene AS"}, nil)

	person, err := service.Resolve(context.Background(), models.PartID{Type: models.PartTypePerson, Value: "12345678910"})
	assert.NoError(t, err)
	assert.Equal(t, "Ola Nordmann", person.Name)

	org, err := service.Resolve(context.Background(), models.PartID{Type: models.PartTypeVirksomhet, Value: "987654321"})
	assert.NoError(t, err)
	assert.Equal(t, "Advokatene AS", org.Name)

	_, err = service.Resolve(context.Background(), models.PartID{Type: "ROBOT", Value: "x"})
	assert.Error(t, err)
}

func TestResolveFallsBackToBackendSearch(t *testing.T) {
	persondata := new(mockPersondataClient)
	backend := new(MockSaksbehandlingClient)
	service := NewPartService(persondata, backend)

	persondata.On("ResolvePerson", mock.Anything, "12345678910").Return(nil, nil)
	backend.On("SearchPart", mock.Anything, "12345678910").Return(&models.Part{Name: "Kari Nordmann"}, nil)

	part, err := service.Resolve(context.Background(), models.PartID{Type: models.PartTypePerson, Value: "12345678910"})
	assert.NoError(t, err)
	assert.Equal(t, "Kari Nordmann", part.Name)
	backend.AssertCalled(t, "SearchPart", mock.Anything, "12345678910")
}

func TestResolveUnknownIdentifier(t *testing.T) {
	persondata := new(mockPersondataClient)
	backend := new(MockSaksbehandlingClient)
	service := NewPartService(persondata, backend)

	persondata.On("ResolvePerson", mock.Anything, "00000000000").Return(nil, nil)
	backend.On("SearchPart", mock.Anything, "00000000000").Return(nil, nil)

	_, err := service.Resolve(context.Background(), models.PartID{Type: models.PartTypePerson, Value: "00000000000"})
	assert.True(t, errors.Is(err, ErrPartNotFound))
}

func TestResolveWithUtsendingskanal(t *testing.T) {
	backend := new(MockSaksbehandlingClient)
	service := NewPartService(new(mockPersondataClient), backend)

	kanal := models.UtsendingskanalSentralUtskrift
	backend.On("SearchPartWithUtsendingskanal", mock.Anything, "12345678910", "12345678910", "SYKEPENGER").
		Return(&models.Part{Name: "Ola Nordmann", Utsendingskanal: &kanal}, nil)

	part, err := service.ResolveWithUtsendingskanal(context.Background(),
		models.PartID{Type: models.PartTypePerson, Value: "12345678910"}, "12345678910", "SYKEPENGER")
	assert.NoError(t, err)
	assert.Equal(t, models.UtsendingskanalSentralUtskrift, *part.Utsendingskanal)

	backend.On("SearchPartWithUtsendingskanal", mock.Anything, "00000000000", "12345678910", "SYKEPENGER").
		Return(nil, nil)

	_, err = service.ResolveWithUtsendingskanal(context.Background(),
		models.PartID{Type: models.PartTypePerson, Value: "00000000000"}, "12345678910", "SYKEPENGER")
	assert.True(t, errors.Is(err, ErrPartNotFound))
}
