package models

import "time"

// Part type constants
const (
	PartTypePerson     = "PERSON"
	PartTypeVirksomhet = "VIRKSOMHET"
)

// Part status constants as reported by the identity directory
const (
	PartStatusDead             = "DEAD"
	PartStatusDeleted          = "DELETED"
	PartStatusEgenAnsatt       = "EGEN_ANSATT"
	PartStatusVergemaal        = "VERGEMAAL"
	PartStatusFullmakt         = "FULLMAKT"
	PartStatusFortrolig        = "FORTROLIG"
	PartStatusStrengtFortrolig = "STRENGT_FORTROLIG"
	PartStatusReservertKRR     = "RESERVERT_I_KRR"
	PartStatusDelt             = "DELT_ANSVAR"
)

// Utsendingskanal (distribution channel) constants
const (
	UtsendingskanalSentralUtskrift = "SENTRAL_UTSKRIFT"
	UtsendingskanalLokalUtskrift   = "LOKAL_UTSKRIFT"
	UtsendingskanalSDP             = "SDP"
	UtsendingskanalNavNo           = "NAV_NO"
)

// PartID is a tagged identifier for a person or an organization
type PartID struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// PartStatus is a status flag on a resolved party, optionally dated
type PartStatus struct {
	Status string     `json:"status"`
	Date   *time.Time `json:"date,omitempty"`
}

// Address is a mailing address, either resolved or overridden per receiver
type Address struct {
	AddressLine1 *string `json:"address_line_1,omitempty"`
	AddressLine2 *string `json:"address_line_2,omitempty"`
	AddressLine3 *string `json:"address_line_3,omitempty"`
	Postnummer   *string `json:"postnummer,omitempty"`
	Poststed     *string `json:"poststed,omitempty"`
	Landkode     string  `json:"landkode"`
}

// Part is a display-ready party resolved from the identity directory
// or the case-processing backend search API
type Part struct {
	ID              PartID       `json:"id"`
	Name            string       `json:"name"`
	Available       bool         `json:"available"`
	Language        *string      `json:"language,omitempty"`
	Statuses        []PartStatus `json:"statuses"`
	Address         *Address     `json:"address,omitempty"`
	Utsendingskanal *string      `json:"utsendingskanal,omitempty"`
}

// IsValidPartType checks if the part type is valid
func IsValidPartType(partType string) bool {
	return partType == PartTypePerson || partType == PartTypeVirksomhet
}

// HasStatus reports whether the party carries the given status flag
func (p *Part) HasStatus(status string) bool {
	for _, s := range p.Statuses {
		if s.Status == status {
			return true
		}
	}
	return false
}
