package services

import (
	"errors"
	"fmt"
)

var (
	// ErrRegistreringNotFound is returned when a draft id resolves to nothing
	ErrRegistreringNotFound = errors.New("registrering not found")
	// ErrRegistreringFinished is returned when a mutation targets a submitted draft
	ErrRegistreringFinished = errors.New("registrering is finished and can no longer be changed")
	// ErrMulighetNotFound is returned when the referenced opportunity does not exist
	ErrMulighetNotFound = errors.New("mulighet not found")
	// ErrPartNotFound is returned when an identifier resolves to no known party
	ErrPartNotFound = errors.New("part not found")
	// ErrMottakerNotFound is returned when a receiver id does not belong to the draft
	ErrMottakerNotFound = errors.New("mottaker not found")
	// ErrAvsenderRequired is returned when a received journalpost has no sender
	// on record and the draft carries no override; finalizing is impossible
	ErrAvsenderRequired = errors.New("journalpost has no avsender and the registrering sets no override")
)

// Validation section names
const (
	SectionSaksdata = "saksdata"
	SectionSvarbrev = "svarbrev"
)

// InvalidProperty is a single violated rule on a named field
type InvalidProperty struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationSection groups violations under a named section so the caller
// can display every problem at once
type ValidationSection struct {
	Section    string            `json:"section"`
	Properties []InvalidProperty `json:"properties"`
}

// ValidationError carries every violated rule from one validation pass.
// It is only constructed when at least one section is non-empty.
type ValidationError struct {
	Sections []ValidationSection `json:"sections"`
}

func (e *ValidationError) Error() string {
	count := 0
	for _, s := range e.Sections {
		count += len(s.Properties)
	}
	return fmt.Sprintf("validation failed with %d problem(s) in %d section(s)", count, len(e.Sections))
}
