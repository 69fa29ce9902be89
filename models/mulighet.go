package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fagsystem constants: which system a mulighet (previously decided case)
// currently lives in
const (
	FagsystemInfotrygd    = "INFOTRYGD"
	FagsystemKlageinstans = "KLAGEINSTANS"
)

// MulighetPart is a resolved party on a mulighet, with address and
// preferred distribution channel as reported by the source system
type MulighetPart struct {
	Part            Part    `json:"part"`
	Utsendingskanal *string `json:"utsendingskanal,omitempty"`
}

// Mulighet is an immutable-after-fetch snapshot of a previously decided case
// that a draft can be converted from. Treated as read-only once attached.
type Mulighet struct {
	ID                         string        `json:"id"`
	TypeID                     string        `json:"type_id"`
	OriginalFagsystem          string        `json:"original_fagsystem"`
	CurrentFagsystem           string        `json:"current_fagsystem"`
	SakID                      string        `json:"sak_id"`
	FagsakID                   string        `json:"fagsak_id"`
	YtelseID                   string        `json:"ytelse_id"`
	VedtakDate                 *time.Time    `json:"vedtak_date,omitempty"`
	HjemmelIDList              []string      `json:"hjemmel_id_list"`
	KlageBehandlendeEnhet      string        `json:"klage_behandlende_enhet"`
	SakenGjelder               *MulighetPart `json:"saken_gjelder,omitempty"`
	Klager                     *MulighetPart `json:"klager,omitempty"`
	Fullmektig                 *MulighetPart `json:"fullmektig,omitempty"`
	PreviousSaksbehandlerIdent *string       `json:"previous_saksbehandler_ident,omitempty"`
	PreviousSaksbehandlerName  *string       `json:"previous_saksbehandler_name,omitempty"`
}

// IsFromInfotrygd reports whether the decided case originated in the legacy system
func (m *Mulighet) IsFromInfotrygd() bool {
	return m.OriginalFagsystem == FagsystemInfotrygd
}

// MulighetSnapshot caches a fetched Mulighet per draft so repeated edits do
// not re-fetch from the source system. Keyed by (registrering, mulighet).
type MulighetSnapshot struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	RegistreringID string `gorm:"type:uuid;not null;uniqueIndex:idx_snapshot_registrering_mulighet" json:"registrering_id"`
	MulighetID     string `gorm:"size:60;not null;uniqueIndex:idx_snapshot_registrering_mulighet" json:"mulighet_id"`

	// Serialized Mulighet as fetched from the source system
	Payload string `gorm:"type:text;not null" json:"-"`
}

// BeforeCreate hook to generate UUID
func (s *MulighetSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for MulighetSnapshot model
func (MulighetSnapshot) TableName() string {
	return "mulighet_snapshots"
}
