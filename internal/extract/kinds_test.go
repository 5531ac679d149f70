package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAssociationKind(t *testing.T) {
	var tests = []struct {
		in   string
		kind AssociationKind
		ok   bool
	}{
		{"belongs_to", BelongsTo, true},
		{"BelongsTo", BelongsTo, true},
		{"hasMany", HasMany, true},
		{"has_one", HasOne, true},
		{"has_and_belongs_to_many", HasAndBelongsToMany, true},
		{"HasAndBelongsToMany", HasAndBelongsToMany, true},
		{"has_many_through", "", false},
		{"composed_of", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			kind, ok := ParseAssociationKind(tt.in)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParseValidationKind(t *testing.T) {
	var tests = []struct {
		in   string
		kind ValidationKind
	}{
		{"PresenceValidator", Presence},
		{"ActiveRecord::Validations::PresenceValidator", Presence},
		{"ActiveModel::Validations::LengthValidator", Length},
		{"ActiveRecord::Validations::UniquenessValidator", Uniqueness},
		{"NumericalityValidator", Numericality},
		{"ActiveModel::Validations::FormatValidator", Format},
		{"InclusionValidator", Inclusion},
		{"ExclusionValidator", Exclusion},
		{"ConfirmationValidator", Confirmation},
		{"AcceptanceValidator", Acceptance},
		{"AbsenceValidator", Absence},
		{"ComparisonValidator", Comparison},
		{"ActiveRecord::Validations::AssociatedValidator", Associated},
		{"presence", Presence},
		{"length_validator", Length},
		{"validators.Uniqueness", Uniqueness},
		{"EmailValidator", Unknown},
		{"Validator", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.kind, ParseValidationKind(tt.in))
		})
	}
}
