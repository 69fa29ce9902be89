package services

import (
	"errors"
	"fmt"
	"time"

	"klage_registrering_go/models"

	"gorm.io/gorm"
)

// Draft store. Every mutation runs inside one transaction and refuses to
// touch a finished draft. Concurrent edits of the same draft are resolved
// last-write-wins at field granularity; the store relies on the database's
// transaction isolation and does no further reconciliation.

// CreateRegistrering creates a new draft seeded with the case subject.
// The subject also becomes the default notification-letter receiver.
func CreateRegistrering(db *gorm.DB, createdBy string, sakenGjelder models.PartID) (*models.Registrering, error) {
	if !models.IsValidPartType(sakenGjelder.Type) {
		return nil, fmt.Errorf("invalid part type: %s", sakenGjelder.Type)
	}

	r := models.Registrering{
		CreatedBy:         createdBy,
		SakenGjelderType:  &sakenGjelder.Type,
		SakenGjelderValue: &sakenGjelder.Value,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&r).Error; err != nil {
			return fmt.Errorf("failed to create registrering: %w", err)
		}
		mottaker := models.Mottaker{
			RegistreringID: r.ID,
			PartType:       sakenGjelder.Type,
			PartValue:      sakenGjelder.Value,
			Handling:       models.HandlingAuto,
		}
		if err := tx.Create(&mottaker).Error; err != nil {
			return fmt.Errorf("failed to create default mottaker: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetRegistrering(db, r.ID)
}

// GetRegistrering fetches a draft with its receivers
func GetRegistrering(db *gorm.DB, id string) (*models.Registrering, error) {
	var r models.Registrering
	if err := db.Preload("Mottakere").First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistreringNotFound
		}
		return nil, fmt.Errorf("failed to fetch registrering: %w", err)
	}
	return &r, nil
}

// ListRegistreringer lists drafts owned by a caseworker, filtered on
// completion state
func ListRegistreringer(db *gorm.DB, createdBy string, ferdige bool) ([]models.Registrering, error) {
	query := db.Preload("Mottakere").Where("created_by = ?", createdBy)
	if ferdige {
		query = query.Where("finished_at IS NOT NULL").Order("finished_at DESC")
	} else {
		query = query.Where("finished_at IS NULL").Order("created_at DESC")
	}

	var registreringer []models.Registrering
	if err := query.Find(&registreringer).Error; err != nil {
		return nil, fmt.Errorf("failed to list registreringer: %w", err)
	}
	return registreringer, nil
}

// DeleteRegistrering removes an unfinished draft and its receivers
func DeleteRegistrering(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		r, err := loadMutable(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("registrering_id = ?", r.ID).Delete(&models.Mottaker{}).Error; err != nil {
			return fmt.Errorf("failed to delete mottakere: %w", err)
		}
		if err := tx.Where("registrering_id = ?", r.ID).Delete(&models.MulighetSnapshot{}).Error; err != nil {
			return fmt.Errorf("failed to delete mulighet snapshots: %w", err)
		}
		if err := tx.Delete(r).Error; err != nil {
			return fmt.Errorf("failed to delete registrering: %w", err)
		}
		return nil
	})
}

// loadMutable fetches a draft for mutation, rejecting finished drafts
func loadMutable(tx *gorm.DB, id string) (*models.Registrering, error) {
	var r models.Registrering
	if err := tx.Preload("Mottakere").First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistreringNotFound
		}
		return nil, fmt.Errorf("failed to fetch registrering: %w", err)
	}
	if r.IsFinished() {
		return nil, ErrRegistreringFinished
	}
	return &r, nil
}

// update runs one guarded field mutation and returns the fresh draft
func update(db *gorm.DB, id string, mutate func(tx *gorm.DB, r *models.Registrering) error) (*models.Registrering, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		r, err := loadMutable(tx, id)
		if err != nil {
			return err
		}
		if err := mutate(tx, r); err != nil {
			return err
		}
		if err := tx.Omit("Mottakere").Save(r).Error; err != nil {
			return fmt.Errorf("failed to save registrering: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetRegistrering(db, id)
}

// SetJournalpostID sets the archive entry the draft refers to
func SetJournalpostID(db *gorm.DB, id, journalpostID string) (*models.Registrering, error) {
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		r.JournalpostID = &journalpostID
		return nil
	})
}

// SetType sets the chosen case type
func SetType(db *gorm.DB, id, typeID string) (*models.Registrering, error) {
	if !models.IsValidType(typeID) {
		return nil, fmt.Errorf("invalid case type: %s", typeID)
	}
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		r.TypeID = &typeID
		return nil
	})
}

// SetMulighet sets the chosen opportunity. Changing opportunity invalidates
// any snapshot cached for the previous one.
func SetMulighet(db *gorm.DB, id, mulighetID string, basedOnJournalpost bool) (*models.Registrering, error) {
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		if r.MulighetID != nil && *r.MulighetID != mulighetID {
			if err := tx.Where("registrering_id = ?", r.ID).Delete(&models.MulighetSnapshot{}).Error; err != nil {
				return fmt.Errorf("failed to drop stale mulighet snapshot: %w", err)
			}
		}
		r.MulighetID = &mulighetID
		r.MulighetBasedOnJournalpost = basedOnJournalpost
		return nil
	})
}

// SetYtelse sets the benefit type
func SetYtelse(db *gorm.DB, id, ytelseID string) (*models.Registrering, error) {
	if !IsValidYtelse(ytelseID) {
		return nil, fmt.Errorf("invalid ytelse: %s", ytelseID)
	}
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		r.YtelseID = &ytelseID
		return nil
	})
}

// SetMottattVedtaksinstans sets the date the case was received at first instance
func SetMottattVedtaksinstans(db *gorm.DB, id string, date *time.Time) (*models.Registrering, error) {
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		r.MottattVedtaksinstans = date
		return nil
	})
}

// SetMottattKlageinstans sets the date the case was received at the appeal instance
func SetMottattKlageinstans(db *gorm.DB, id string, date *time.Time) (*models.Registrering, error) {
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		r.MottattKlageinstans = date
		return nil
	})
}

// SetBehandlingstid sets the expected processing time
func SetBehandlingstid(db *gorm.DB, id string, units int, unitTypeID string) (*models.Registrering, error) {
	if !models.IsValidBehandlingstidUnit(unitTypeID) {
		return nil, fmt.Errorf("invalid behandlingstid unit: %s", unitTypeID)
	}
	if units <= 0 {
		return nil, fmt.Errorf("behandlingstid must be positive")
	}
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		r.BehandlingstidUnits = units
		r.BehandlingstidUnitTypeID = unitTypeID
		return nil
	})
}

// SetHjemler replaces the statutory-ground list
func SetHjemler(db *gorm.DB, id string, hjemmelIDs []string) (*models.Registrering, error) {
	for _, hjemmelID := range hjemmelIDs {
		if !IsValidHjemmel(hjemmelID) {
			return nil, fmt.Errorf("invalid hjemmel: %s", hjemmelID)
		}
	}
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		r.SetHjemler(hjemmelIDs)
		return nil
	})
}

// SetSaksbehandler sets the assigned caseworker
func SetSaksbehandler(db *gorm.DB, id string, ident *string) (*models.Registrering, error) {
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		r.SaksbehandlerIdent = ident
		return nil
	})
}

// SetOppgave sets the linked task-system id
func SetOppgave(db *gorm.DB, id string, oppgaveID *string) (*models.Registrering, error) {
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		r.OppgaveID = oppgaveID
		return nil
	})
}

// SetKlager sets the complainant
func SetKlager(db *gorm.DB, id string, part *models.PartID) (*models.Registrering, error) {
	if part != nil && !models.IsValidPartType(part.Type) {
		return nil, fmt.Errorf("invalid part type: %s", part.Type)
	}
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		setPartFields(&r.KlagerType, &r.KlagerValue, part)
		return nil
	})
}

// SetFullmektig sets or clears the power-of-attorney representative and
// keeps the receiver list consistent with the change
func SetFullmektig(db *gorm.DB, id string, part *models.PartID) (*models.Registrering, error) {
	if part != nil && !models.IsValidPartType(part.Type) {
		return nil, fmt.Errorf("invalid part type: %s", part.Type)
	}
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		previous := r.Fullmektig()
		setPartFields(&r.FullmektigType, &r.FullmektigValue, part)
		return syncMottakere(tx, r, previous)
	})
}

// SetAvsender sets or clears the sender override for the archived document
func SetAvsender(db *gorm.DB, id string, part *models.PartID) (*models.Registrering, error) {
	if part != nil && !models.IsValidPartType(part.Type) {
		return nil, fmt.Errorf("invalid part type: %s", part.Type)
	}
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		setPartFields(&r.AvsenderType, &r.AvsenderValue, part)
		return nil
	})
}

// SvarbrevUpdate carries the notification-letter fields set in one call
type SvarbrevUpdate struct {
	Send                     *bool   `json:"send,omitempty"`
	Title                    *string `json:"title,omitempty"`
	CustomText               *string `json:"custom_text,omitempty"`
	OverrideCustomText       *bool   `json:"override_custom_text,omitempty"`
	BehandlingstidUnits      *int    `json:"behandlingstid_units,omitempty"`
	BehandlingstidUnitTypeID *string `json:"behandlingstid_unit_type_id,omitempty"`
	OverrideBehandlingstid   *bool   `json:"override_behandlingstid,omitempty"`
	FullmektigFritekst       *string `json:"fullmektig_fritekst,omitempty"`
}

// UpdateSvarbrev applies notification-letter changes; absent fields are untouched
func UpdateSvarbrev(db *gorm.DB, id string, input SvarbrevUpdate) (*models.Registrering, error) {
	if input.BehandlingstidUnitTypeID != nil && !models.IsValidBehandlingstidUnit(*input.BehandlingstidUnitTypeID) {
		return nil, fmt.Errorf("invalid behandlingstid unit: %s", *input.BehandlingstidUnitTypeID)
	}
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		if input.Send != nil {
			r.SendSvarbrev = *input.Send
		}
		if input.Title != nil {
			r.SvarbrevTitle = *input.Title
		}
		if input.CustomText != nil {
			r.SvarbrevCustomText = input.CustomText
		}
		if input.OverrideCustomText != nil {
			r.OverrideSvarbrevCustomText = *input.OverrideCustomText
		}
		if input.BehandlingstidUnits != nil {
			r.SvarbrevBehandlingstidUnits = input.BehandlingstidUnits
		}
		if input.BehandlingstidUnitTypeID != nil {
			r.SvarbrevBehandlingstidUnitTypeID = input.BehandlingstidUnitTypeID
		}
		if input.OverrideBehandlingstid != nil {
			r.OverrideSvarbrevBehandlingstid = *input.OverrideBehandlingstid
		}
		if input.FullmektigFritekst != nil {
			r.SvarbrevFullmektigFritekst = input.FullmektigFritekst
		}
		return nil
	})
}

// MottakerInput carries the fields for adding a receiver
type MottakerInput struct {
	Part         models.PartID `json:"part"`
	Handling     string        `json:"handling"`
	AddressLine1 *string       `json:"address_line_1,omitempty"`
	AddressLine2 *string       `json:"address_line_2,omitempty"`
	AddressLine3 *string       `json:"address_line_3,omitempty"`
	Postnummer   *string       `json:"postnummer,omitempty"`
	Landkode     *string       `json:"landkode,omitempty"`
}

// AddMottaker adds a notification-letter receiver. Receivers are unique by
// party identifier; adding an existing identifier updates its handling and
// address override instead of duplicating.
func AddMottaker(db *gorm.DB, id string, input MottakerInput) (*models.Registrering, error) {
	if !models.IsValidPartType(input.Part.Type) {
		return nil, fmt.Errorf("invalid part type: %s", input.Part.Type)
	}
	if input.Handling == "" {
		input.Handling = models.HandlingAuto
	}
	if !models.IsValidHandling(input.Handling) {
		return nil, fmt.Errorf("invalid handling: %s", input.Handling)
	}

	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		for i := range r.Mottakere {
			if r.Mottakere[i].PartValue == input.Part.Value {
				existing := &r.Mottakere[i]
				existing.Handling = input.Handling
				existing.AddressLine1 = input.AddressLine1
				existing.AddressLine2 = input.AddressLine2
				existing.AddressLine3 = input.AddressLine3
				existing.Postnummer = input.Postnummer
				existing.Landkode = input.Landkode
				if err := tx.Save(existing).Error; err != nil {
					return fmt.Errorf("failed to update mottaker: %w", err)
				}
				return nil
			}
		}

		mottaker := models.Mottaker{
			RegistreringID: r.ID,
			PartType:       input.Part.Type,
			PartValue:      input.Part.Value,
			Handling:       input.Handling,
			AddressLine1:   input.AddressLine1,
			AddressLine2:   input.AddressLine2,
			AddressLine3:   input.AddressLine3,
			Postnummer:     input.Postnummer,
			Landkode:       input.Landkode,
		}
		if err := tx.Create(&mottaker).Error; err != nil {
			return fmt.Errorf("failed to create mottaker: %w", err)
		}
		return nil
	})
}

// RemoveMottaker removes a receiver by its id
func RemoveMottaker(db *gorm.DB, id, mottakerID string) (*models.Registrering, error) {
	return update(db, id, func(tx *gorm.DB, r *models.Registrering) error {
		result := tx.Where("id = ? AND registrering_id = ?", mottakerID, r.ID).Delete(&models.Mottaker{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete mottaker: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrMottakerNotFound
		}
		return nil
	})
}

// syncMottakere keeps the receiver list consistent when the representative
// changes. The previous representative's receiver goes away unless the same
// identifier is still required by another role; the case subject comes back
// as the default receiver whenever no representative is chosen.
func syncMottakere(tx *gorm.DB, r *models.Registrering, previous *models.PartID) error {
	fullmektig := r.Fullmektig()
	klager := r.Klager()
	sakenGjelder := r.SakenGjelder()

	if previous != nil && (fullmektig == nil || fullmektig.Value != previous.Value) {
		stillRequired := (klager != nil && klager.Value == previous.Value) ||
			(sakenGjelder != nil && sakenGjelder.Value == previous.Value)
		if !stillRequired {
			if err := tx.Where("registrering_id = ? AND part_value = ?", r.ID, previous.Value).
				Delete(&models.Mottaker{}).Error; err != nil {
				return fmt.Errorf("failed to remove previous fullmektig mottaker: %w", err)
			}
		}
	}

	if fullmektig != nil {
		if err := ensureMottaker(tx, r.ID, *fullmektig); err != nil {
			return err
		}
		// The default subject receiver yields to the representative unless
		// the subject identifier is required in its own right
		if sakenGjelder != nil && sakenGjelder.Value != fullmektig.Value &&
			(klager == nil || klager.Value != sakenGjelder.Value) {
			if err := tx.Where("registrering_id = ? AND part_value = ?", r.ID, sakenGjelder.Value).
				Delete(&models.Mottaker{}).Error; err != nil {
				return fmt.Errorf("failed to remove default mottaker: %w", err)
			}
		}
	} else if sakenGjelder != nil {
		if err := ensureMottaker(tx, r.ID, *sakenGjelder); err != nil {
			return err
		}
	}

	return nil
}

func ensureMottaker(tx *gorm.DB, registreringID string, part models.PartID) error {
	var count int64
	if err := tx.Model(&models.Mottaker{}).
		Where("registrering_id = ? AND part_value = ?", registreringID, part.Value).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check mottaker uniqueness: %w", err)
	}
	if count > 0 {
		return nil
	}

	mottaker := models.Mottaker{
		RegistreringID: registreringID,
		PartType:       part.Type,
		PartValue:      part.Value,
		Handling:       models.HandlingAuto,
	}
	if err := tx.Create(&mottaker).Error; err != nil {
		return fmt.Errorf("failed to create mottaker: %w", err)
	}
	return nil
}

func setPartFields(typeField, valueField **string, part *models.PartID) {
	if part == nil {
		*typeField = nil
		*valueField = nil
		return
	}
	partType := part.Type
	partValue := part.Value
	*typeField = &partType
	*valueField = &partValue
}
