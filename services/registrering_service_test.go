package services

import (
	"errors"
	"testing"
	"time"

	"klage_registrering_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createTestRegistrering(t *testing.T, db *gorm.DB) *models.Registrering {
	t.Helper()
	r, err := CreateRegistrering(db, "Z123456", models.PartID{
		Type:  models.PartTypePerson,
		Value: "12345678910",
	})
	assert.NoError(t, err)
	return r
}

func mottakerValues(r *models.Registrering) []string {
	values := make([]string, 0, len(r.Mottakere))
	for _, m := range r.Mottakere {
		values = append(values, m.PartValue)
	}
	return values
}

func TestCreateRegistreringSeedsDefaultMottaker(t *testing.T) {
	db := setupTestDB()
	r := createTestRegistrering(t, db)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Z123456", r.CreatedBy)
	assert.Equal(t, models.DefaultSvarbrevTitle, r.SvarbrevTitle)
	assert.Equal(t, 12, r.BehandlingstidUnits)
	assert.Equal(t, models.BehandlingstidUnitWeeks, r.BehandlingstidUnitTypeID)

	// The case subject starts out as the default receiver
	assert.Len(t, r.Mottakere, 1)
	assert.Equal(t, "12345678910", r.Mottakere[0].PartValue)
	assert.Equal(t, models.HandlingAuto, r.Mottakere[0].Handling)
}

func TestGetRegistreringNotFound(t *testing.T) {
	db := setupTestDB()
	_, err := GetRegistrering(db, "no-such-id")
	assert.True(t, errors.Is(err, ErrRegistreringNotFound))
}

func TestListRegistreringerFiltersOnOwnerAndCompletion(t *testing.T) {
	db := setupTestDB()
	r1 := createTestRegistrering(t, db)
	createTestRegistrering(t, db)

	other, err := CreateRegistrering(db, "Z999999", models.PartID{Type: models.PartTypePerson, Value: "10987654321"})
	assert.NoError(t, err)

	// Finish one of Z123456's drafts directly
	now := time.Now()
	db.Model(&models.Registrering{}).Where("id = ?", r1.ID).Update("finished_at", now)

	open, err := ListRegistreringer(db, "Z123456", false)
	assert.NoError(t, err)
	assert.Len(t, open, 1)

	finished, err := ListRegistreringer(db, "Z123456", true)
	assert.NoError(t, err)
	assert.Len(t, finished, 1)
	assert.Equal(t, r1.ID, finished[0].ID)

	otherOpen, err := ListRegistreringer(db, "Z999999", false)
	assert.NoError(t, err)
	assert.Len(t, otherOpen, 1)
	assert.Equal(t, other.ID, otherOpen[0].ID)
}

func TestFinishedRegistreringRejectsEveryMutation(t *testing.T) {
	db := setupTestDB()
	r := createTestRegistrering(t, db)
	db.Model(&models.Registrering{}).Where("id = ?", r.ID).Update("finished_at", time.Now())

	part := &models.PartID{Type: models.PartTypePerson, Value: "10987654321"}
	mutations := map[string]func() error{
		"SetJournalpostID": func() error { _, err := SetJournalpostID(db, r.ID, "jp-1"); return err },
		"SetType":          func() error { _, err := SetType(db, r.ID, models.TypeKlage); return err },
		"SetMulighet":      func() error { _, err := SetMulighet(db, r.ID, "m-1", false); return err },
		"SetYtelse":        func() error { _, err := SetYtelse(db, r.ID, "SYKEPENGER"); return err },
		"SetMottattVedtaksinstans": func() error {
			_, err := SetMottattVedtaksinstans(db, r.ID, timePtr(time.Now()))
			return err
		},
		"SetMottattKlageinstans": func() error {
			_, err := SetMottattKlageinstans(db, r.ID, timePtr(time.Now()))
			return err
		},
		"SetBehandlingstid": func() error { _, err := SetBehandlingstid(db, r.ID, 4, models.BehandlingstidUnitMonths); return err },
		"SetHjemler":        func() error { _, err := SetHjemler(db, r.ID, []string{"FTRL_8_4"}); return err },
		"SetSaksbehandler":  func() error { _, err := SetSaksbehandler(db, r.ID, strPtr("Z111111")); return err },
		"SetOppgave":        func() error { _, err := SetOppgave(db, r.ID, strPtr("oppg-1")); return err },
		"SetKlager":         func() error { _, err := SetKlager(db, r.ID, part); return err },
		"SetFullmektig":     func() error { _, err := SetFullmektig(db, r.ID, part); return err },
		"SetAvsender":       func() error { _, err := SetAvsender(db, r.ID, part); return err },
		"UpdateSvarbrev": func() error {
			send := true
			_, err := UpdateSvarbrev(db, r.ID, SvarbrevUpdate{Send: &send})
			return err
		},
		"AddMottaker": func() error {
			_, err := AddMottaker(db, r.ID, MottakerInput{Part: *part})
			return err
		},
		"RemoveMottaker":      func() error { _, err := RemoveMottaker(db, r.ID, r.Mottakere[0].ID); return err },
		"DeleteRegistrering":  func() error { return DeleteRegistrering(db, r.ID) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			assert.True(t, errors.Is(mutate(), ErrRegistreringFinished))
		})
	}
}

func TestSetHjemlerPreservesOrder(t *testing.T) {
	db := setupTestDB()
	r := createTestRegistrering(t, db)

	updated, err := SetHjemler(db, r.ID, []string{"FTRL_14_7", "FTRL_8_4"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"FTRL_14_7", "FTRL_8_4"}, updated.Hjemler())

	_, err = SetHjemler(db, r.ID, []string{"NOT_A_HJEMMEL"})
	assert.Error(t, err)
}

func TestSetMulighetDropsStaleSnapshot(t *testing.T) {
	db := setupTestDB()
	r := createTestRegistrering(t, db)

	_, err := SetMulighet(db, r.ID, "m-1", false)
	assert.NoError(t, err)
	db.Create(&models.MulighetSnapshot{RegistreringID: r.ID, MulighetID: "m-1", Payload: "{}"})

	_, err = SetMulighet(db, r.ID, "m-2", false)
	assert.NoError(t, err)

	var count int64
	db.Model(&models.MulighetSnapshot{}).Where("registrering_id = ?", r.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSetFullmektigReplacesDefaultMottaker(t *testing.T) {
	db := setupTestDB()
	r := createTestRegistrering(t, db)

	fullmektig := &models.PartID{Type: models.PartTypeVirksomhet, Value: "987654321"}
	updated, err := SetFullmektig(db, r.ID, fullmektig)
	assert.NoError(t, err)

	// The representative takes over from the default subject receiver
	assert.Equal(t, []string{"987654321"}, mottakerValues(updated))

	// Clearing the representative removes its receiver and restores the subject
	updated, err = SetFullmektig(db, r.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"12345678910"}, mottakerValues(updated))
}

func TestSetFullmektigSameAsSubjectKeepsOneMottaker(t *testing.T) {
	db := setupTestDB()
	r := createTestRegistrering(t, db)

	same := &models.PartID{Type: models.PartTypePerson, Value: "12345678910"}
	updated, err := SetFullmektig(db, r.ID, same)
	assert.NoError(t, err)
	assert.Len(t, updated.Mottakere, 1)
	assert.Equal(t, "12345678910", updated.Mottakere[0].PartValue)
}

func TestSetFullmektigKeepsMottakerRequiredByKlager(t *testing.T) {
	db := setupTestDB()
	r := createTestRegistrering(t, db)

	klager := &models.PartID{Type: models.PartTypePerson, Value: "10987654321"}
	_, err := SetKlager(db, r.ID, klager)
	assert.NoError(t, err)

	// Representative matches the complainant identifier
	_, err = SetFullmektig(db, r.ID, klager)
	assert.NoError(t, err)

	// Changing representative must not remove the receiver the complainant
	// still requires
	updated, err := SetFullmektig(db, r.ID, &models.PartID{Type: models.PartTypeVirksomhet, Value: "987654321"})
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"10987654321", "987654321"}, mottakerValues(updated))
}

func TestAddMottakerDeduplicatesByIdentifier(t *testing.T) {
	db := setupTestDB()
	r := createTestRegistrering(t, db)

	updated, err := AddMottaker(db, r.ID, MottakerInput{
		Part:     models.PartID{Type: models.PartTypePerson, Value: "12345678910"},
		Handling: models.HandlingLocalPrint,
	})
	assert.NoError(t, err)

	// Same identifier updates the existing receiver instead of duplicating
	assert.Len(t, updated.Mottakere, 1)
	assert.Equal(t, models.HandlingLocalPrint, updated.Mottakere[0].Handling)
}

func TestAddMottakerWithAddressOverride(t *testing.T) {
	db := setupTestDB()
	r := createTestRegistrering(t, db)

	updated, err := AddMottaker(db, r.ID, MottakerInput{
		Part:         models.PartID{Type: models.PartTypeVirksomhet, Value: "987654321"},
		Handling:     models.HandlingCentralPrint,
		AddressLine1: strPtr("Postboks 1"),
		Postnummer:   strPtr("0101"),
	})
	assert.NoError(t, err)
	assert.Len(t, updated.Mottakere, 2)

	for _, m := range updated.Mottakere {
		if m.PartValue == "987654321" {
			assert.True(t, m.HasAddressOverride())
		}
	}
}

func TestRemoveMottaker(t *testing.T) {
	db := setupTestDB()
	r := createTestRegistrering(t, db)

	updated, err := RemoveMottaker(db, r.ID, r.Mottakere[0].ID)
	assert.NoError(t, err)
	assert.Empty(t, updated.Mottakere)

	_, err = RemoveMottaker(db, r.ID, "no-such-mottaker")
	assert.True(t, errors.Is(err, ErrMottakerNotFound))
}

func TestUpdateSvarbrevPatchesOnlyGivenFields(t *testing.T) {
	db := setupTestDB()
	r := createTestRegistrering(t, db)

	send := true
	override := true
	updated, err := UpdateSvarbrev(db, r.ID, SvarbrevUpdate{
		Send:               &send,
		CustomText:         strPtr("<p>Vi trenger mer dokumentasjon.</p>"),
		OverrideCustomText: &override,
	})
	assert.NoError(t, err)
	assert.True(t, updated.SendSvarbrev)
	assert.True(t, updated.OverrideSvarbrevCustomText)
	assert.Equal(t, models.DefaultSvarbrevTitle, updated.SvarbrevTitle)

	// A later update leaves untouched fields alone
	updated, err = UpdateSvarbrev(db, r.ID, SvarbrevUpdate{Title: strPtr("Orientering")})
	assert.NoError(t, err)
	assert.Equal(t, "Orientering", updated.SvarbrevTitle)
	assert.True(t, updated.SendSvarbrev)
	assert.NotNil(t, updated.SvarbrevCustomText)
}

func TestDeleteRegistreringCascades(t *testing.T) {
	db := setupTestDB()
	r := createTestRegistrering(t, db)
	db.Create(&models.MulighetSnapshot{RegistreringID: r.ID, MulighetID: "m-1", Payload: "{}"})

	assert.NoError(t, DeleteRegistrering(db, r.ID))

	_, err := GetRegistrering(db, r.ID)
	assert.True(t, errors.Is(err, ErrRegistreringNotFound))

	var mottakere int64
	db.Model(&models.Mottaker{}).Where("registrering_id = ?", r.ID).Count(&mottakere)
	assert.Equal(t, int64(0), mottakere)

	var snapshots int64
	db.Model(&models.MulighetSnapshot{}).Where("registrering_id = ?", r.ID).Count(&snapshots)
	assert.Equal(t, int64(0), snapshots)
}
