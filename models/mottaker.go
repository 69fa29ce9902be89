package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mottaker handling constants: how the notification letter reaches the party
const (
	HandlingAuto         = "AUTO"
	HandlingLocalPrint   = "LOCAL_PRINT"
	HandlingCentralPrint = "CENTRAL_PRINT"
)

// Mottaker is a receiver of the notification letter, owned by a Registrering.
// Receivers are unique by part identifier within one draft.
type Mottaker struct {
	ID        string `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt int64  `gorm:"autoCreateTime" json:"-"`

	RegistreringID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_mottaker_registrering_part" json:"registrering_id"`

	PartType  string `gorm:"size:20;not null" json:"part_type"`
	PartValue string `gorm:"size:20;not null;uniqueIndex:idx_mottaker_registrering_part" json:"part_value"`

	Handling string `gorm:"size:20;not null;default:AUTO" json:"handling"`

	// Optional address override; when set it replaces the resolved address
	AddressLine1 *string `json:"address_line_1,omitempty"`
	AddressLine2 *string `json:"address_line_2,omitempty"`
	AddressLine3 *string `json:"address_line_3,omitempty"`
	Postnummer   *string `gorm:"size:10" json:"postnummer,omitempty"`
	Landkode     *string `gorm:"size:2" json:"landkode,omitempty"`
}

// BeforeCreate hook to generate UUID
func (m *Mottaker) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Mottaker model
func (Mottaker) TableName() string {
	return "mottakere"
}

// PartID returns the receiver's party reference
func (m *Mottaker) PartID() PartID {
	return PartID{Type: m.PartType, Value: m.PartValue}
}

// HasAddressOverride reports whether any override field is set
func (m *Mottaker) HasAddressOverride() bool {
	return m.AddressLine1 != nil || m.AddressLine2 != nil || m.AddressLine3 != nil ||
		m.Postnummer != nil || m.Landkode != nil
}

// IsValidHandling checks if the handling mode is valid
func IsValidHandling(handling string) bool {
	switch handling {
	case HandlingAuto, HandlingLocalPrint, HandlingCentralPrint:
		return true
	}
	return false
}
