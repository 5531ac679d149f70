package extract

import (
	"bytes"
	"encoding/json"
)

// ColumnInfo is the canonical form of one physical column.
type ColumnInfo struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	SQLType string `json:"sql_type"`
	Null    bool   `json:"null"`
	Default any    `json:"default"`
	Primary bool   `json:"primary"`
}

// AssociationInfo is the canonical form of one relationship.
type AssociationInfo struct {
	Name       string  `json:"name"`
	ClassName  string  `json:"class_name"`
	ForeignKey *string `json:"foreign_key"`
	PrimaryKey *string `json:"primary_key"`
}

// AssociationSet groups associations by kind. All four keys are always
// encoded, as arrays.
type AssociationSet struct {
	BelongsTo           []AssociationInfo `json:"belongs_to"`
	HasMany             []AssociationInfo `json:"has_many"`
	HasOne              []AssociationInfo `json:"has_one"`
	HasAndBelongsToMany []AssociationInfo `json:"has_and_belongs_to_many"`
}

// MarshalJSON encodes nil buckets as empty arrays.
func (a AssociationSet) MarshalJSON() ([]byte, error) {
	type plain AssociationSet
	return marshal(plain{
		BelongsTo:           nonNil(a.BelongsTo),
		HasMany:             nonNil(a.HasMany),
		HasOne:              nonNil(a.HasOne),
		HasAndBelongsToMany: nonNil(a.HasAndBelongsToMany),
	})
}

// ValidationInfo is one (attribute, validator) pair.
type ValidationInfo struct {
	Attribute string         `json:"attribute"`
	Type      ValidationKind `json:"type"`
	Options   map[string]any `json:"options"`
}

// MarshalJSON encodes nil options as an empty object.
func (v ValidationInfo) MarshalJSON() ([]byte, error) {
	type plain ValidationInfo
	if v.Options == nil {
		v.Options = map[string]any{}
	}
	return marshal(plain(v))
}

// ModelSnapshot is the output record for one model, one JSON line each.
type ModelSnapshot struct {
	UUID         string           `json:"uuid"`
	Name         string           `json:"name"`
	TableName    string           `json:"table_name"`
	Columns      []ColumnInfo     `json:"columns"`
	Associations AssociationSet   `json:"associations"`
	Validations  []ValidationInfo `json:"validations"`
}

// MarshalJSON encodes nil columns and validations as empty arrays.
func (m ModelSnapshot) MarshalJSON() ([]byte, error) {
	type plain ModelSnapshot
	m.Columns = nonNil(m.Columns)
	m.Validations = nonNil(m.Validations)
	return marshal(plain(m))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// marshal encodes v without HTML escaping.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
