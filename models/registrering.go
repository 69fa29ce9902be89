package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case type constants
const (
	TypeKlage           = "KLAGE"
	TypeAnke            = "ANKE"
	TypeOmgjoeringskrav = "OMGJOERINGSKRAV"
)

// Behandlingstid unit constants
const (
	BehandlingstidUnitWeeks  = "WEEKS"
	BehandlingstidUnitMonths = "MONTHS"
)

// DefaultSvarbrevTitle is the title used when the caseworker does not override it
const DefaultSvarbrevTitle = "Nav klageinstans orienterer om saksbehandlingen"

// Registrering is an in-progress case registration draft. It is the central
// mutable aggregate: once FinishedAt is set the row is immutable and every
// update operation must be rejected.
type Registrering struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Identity of the caseworker who created the draft
	CreatedBy string `gorm:"not null;index:idx_registrering_owner_finished" json:"created_by"`

	// Subject parties, each a tagged {type, identifier} pair
	SakenGjelderType  *string `gorm:"size:20" json:"saken_gjelder_type,omitempty"`
	SakenGjelderValue *string `gorm:"size:20;index" json:"saken_gjelder_value,omitempty"`
	KlagerType        *string `gorm:"size:20" json:"klager_type,omitempty"`
	KlagerValue       *string `gorm:"size:20" json:"klager_value,omitempty"`
	FullmektigType    *string `gorm:"size:20" json:"fullmektig_type,omitempty"`
	FullmektigValue   *string `gorm:"size:20" json:"fullmektig_value,omitempty"`
	AvsenderType      *string `gorm:"size:20" json:"avsender_type,omitempty"`
	AvsenderValue     *string `gorm:"size:20" json:"avsender_value,omitempty"`

	// Case linkage
	JournalpostID              *string `gorm:"size:40" json:"journalpost_id,omitempty"`
	TypeID                     *string `gorm:"size:20" json:"type_id,omitempty"`
	MulighetID                 *string `gorm:"size:60" json:"mulighet_id,omitempty"`
	MulighetBasedOnJournalpost bool    `gorm:"not null;default:false" json:"mulighet_based_on_journalpost"`
	YtelseID                   *string `gorm:"size:40" json:"ytelse_id,omitempty"`

	// Dates (date-only, stored at midnight UTC)
	MottattVedtaksinstans *time.Time `json:"mottatt_vedtaksinstans,omitempty"`
	MottattKlageinstans   *time.Time `json:"mottatt_klageinstans,omitempty"`

	// Expected processing time: value + unit (weeks or months)
	BehandlingstidUnits      int    `gorm:"not null;default:12" json:"behandlingstid_units"`
	BehandlingstidUnitTypeID string `gorm:"size:10;not null;default:WEEKS" json:"behandlingstid_unit_type_id"`

	// Statutory grounds, comma-joined in registry order
	HjemmelIDList string `gorm:"type:text;not null;default:''" json:"-"`

	// Assignment
	SaksbehandlerIdent *string `gorm:"size:20" json:"saksbehandler_ident,omitempty"`
	OppgaveID          *string `gorm:"size:40" json:"oppgave_id,omitempty"`

	// Notification letter (svarbrev)
	SendSvarbrev                     bool       `gorm:"not null;default:false" json:"send_svarbrev"`
	SvarbrevTitle                    string     `gorm:"not null;default:''" json:"svarbrev_title"`
	SvarbrevCustomText               *string    `gorm:"type:text" json:"svarbrev_custom_text,omitempty"`
	OverrideSvarbrevCustomText       bool       `gorm:"not null;default:false" json:"override_svarbrev_custom_text"`
	SvarbrevBehandlingstidUnits      *int       `json:"svarbrev_behandlingstid_units,omitempty"`
	SvarbrevBehandlingstidUnitTypeID *string    `gorm:"size:10" json:"svarbrev_behandlingstid_unit_type_id,omitempty"`
	OverrideSvarbrevBehandlingstid   bool       `gorm:"not null;default:false" json:"override_svarbrev_behandlingstid"`
	SvarbrevFullmektigFritekst       *string    `gorm:"type:text" json:"svarbrev_fullmektig_fritekst,omitempty"`
	Mottakere                        []Mottaker `gorm:"foreignKey:RegistreringID" json:"mottakere,omitempty"`

	// Set when the draft has been submitted to the case-processing backend
	FinishedAt   *time.Time `gorm:"index:idx_registrering_owner_finished" json:"finished_at,omitempty"`
	BehandlingID *string    `gorm:"size:60" json:"behandling_id,omitempty"`
}

// BeforeCreate hook to generate UUID and seed the default svarbrev title
func (r *Registrering) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.SvarbrevTitle == "" {
		r.SvarbrevTitle = DefaultSvarbrevTitle
	}
	return nil
}

// TableName specifies the table name for Registrering model
func (Registrering) TableName() string {
	return "registreringer"
}

// IsFinished reports whether the draft has been submitted and is immutable
func (r *Registrering) IsFinished() bool {
	return r.FinishedAt != nil
}

// SakenGjelder returns the case subject as a PartID, or nil if not set
func (r *Registrering) SakenGjelder() *PartID {
	return partIDFrom(r.SakenGjelderType, r.SakenGjelderValue)
}

// Klager returns the complainant as a PartID, or nil if not set
func (r *Registrering) Klager() *PartID {
	return partIDFrom(r.KlagerType, r.KlagerValue)
}

// Fullmektig returns the power-of-attorney representative, or nil if not set
func (r *Registrering) Fullmektig() *PartID {
	return partIDFrom(r.FullmektigType, r.FullmektigValue)
}

// Avsender returns the sender override for the archived document, or nil
func (r *Registrering) Avsender() *PartID {
	return partIDFrom(r.AvsenderType, r.AvsenderValue)
}

func partIDFrom(partType, value *string) *PartID {
	if partType == nil || value == nil || *value == "" {
		return nil
	}
	return &PartID{Type: *partType, Value: *value}
}

// Hjemler returns the statutory-ground ids in stored order
func (r *Registrering) Hjemler() []string {
	if r.HjemmelIDList == "" {
		return nil
	}
	return strings.Split(r.HjemmelIDList, ",")
}

// SetHjemler replaces the statutory-ground list, preserving order
func (r *Registrering) SetHjemler(hjemler []string) {
	r.HjemmelIDList = strings.Join(hjemler, ",")
}

// IsValidType checks if the case type is valid
func IsValidType(typeID string) bool {
	switch typeID {
	case TypeKlage, TypeAnke, TypeOmgjoeringskrav:
		return true
	}
	return false
}

// IsValidBehandlingstidUnit checks if the processing-time unit is valid
func IsValidBehandlingstidUnit(unitTypeID string) bool {
	return unitTypeID == BehandlingstidUnitWeeks || unitTypeID == BehandlingstidUnitMonths
}
