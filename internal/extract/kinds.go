package extract

import (
	"strings"

	"appwrap/internal/inflect"
)

// AssociationKind is one of the four supported relationship macros.
type AssociationKind string

const (
	BelongsTo           AssociationKind = "belongs_to"
	HasMany             AssociationKind = "has_many"
	HasOne              AssociationKind = "has_one"
	HasAndBelongsToMany AssociationKind = "has_and_belongs_to_many"
)

// ParseAssociationKind accepts the macro in any casing convention.
func ParseAssociationKind(s string) (AssociationKind, bool) {
	switch k := AssociationKind(inflect.Underscore(s)); k {
	case BelongsTo, HasMany, HasOne, HasAndBelongsToMany:
		return k, true
	}
	return "", false
}

// ValidationKind is the short validator type written to the snapshot.
type ValidationKind string

const (
	Absence      ValidationKind = "absence"
	Acceptance   ValidationKind = "acceptance"
	Associated   ValidationKind = "associated"
	Comparison   ValidationKind = "comparison"
	Confirmation ValidationKind = "confirmation"
	Exclusion    ValidationKind = "exclusion"
	Format       ValidationKind = "format"
	Inclusion    ValidationKind = "inclusion"
	Length       ValidationKind = "length"
	Numericality ValidationKind = "numericality"
	Presence     ValidationKind = "presence"
	Uniqueness   ValidationKind = "uniqueness"
	Unknown      ValidationKind = "unknown"
)

var validationKinds = map[ValidationKind]bool{
	Absence: true, Acceptance: true, Associated: true, Comparison: true,
	Confirmation: true, Exclusion: true, Format: true, Inclusion: true,
	Length: true, Numericality: true, Presence: true, Uniqueness: true,
}

// ParseValidationKind derives the kind from a validator identifier such as
// "ActiveRecord::Validations::PresenceValidator", "LengthValidator" or
// "uniqueness". Unrecognised identifiers map to Unknown.
func ParseValidationKind(identifier string) ValidationKind {
	name := strings.TrimSuffix(inflect.Underscore(inflect.Demodulize(identifier)), "_validator")
	if k := ValidationKind(name); validationKinds[k] {
		return k
	}
	return Unknown
}
