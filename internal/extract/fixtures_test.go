package extract

import (
	"context"

	"appwrap/internal/model"
)

type fakeModel struct {
	name         string
	table        string
	pk           string
	abstract     bool
	noTable      bool
	tableErr     error
	columns      []model.Column
	columnsErr   error
	associations []model.Association
	assocErr     error
	validators   []model.Validator
	validErr     error
}

func (m *fakeModel) Name() string       { return m.name }
func (m *fakeModel) TableName() string  { return m.table }
func (m *fakeModel) PrimaryKey() string { return m.pk }
func (m *fakeModel) Abstract() bool     { return m.abstract }

func (m *fakeModel) TableExists() (bool, error) { return !m.noTable, m.tableErr }

func (m *fakeModel) Columns() ([]model.Column, error) { return m.columns, m.columnsErr }

func (m *fakeModel) Associations() ([]model.Association, error) {
	return m.associations, m.assocErr
}

func (m *fakeModel) Validators() ([]model.Validator, error) { return m.validators, m.validErr }

type fakeRegistry struct {
	models  []*fakeModel
	loadErr error
	listErr error
	loads   int
}

func (r *fakeRegistry) Load(ctx context.Context) error {
	r.loads++
	return r.loadErr
}

func (r *fakeRegistry) Descriptors() ([]model.Descriptor, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]model.Descriptor, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}
	return out, nil
}

func strp(s string) *string { return &s }

// userModel and postModel mirror a small blog schema.
func userModel() *fakeModel {
	return &fakeModel{
		name:  "User",
		table: "users",
		pk:    "id",
		columns: []model.Column{
			{Name: "id", Type: "integer", SQLType: "INTEGER", Null: false},
			{Name: "email", Type: "string", SQLType: "varchar", Null: false},
			{Name: "name", Type: "string", SQLType: "varchar", Null: true},
		},
		associations: []model.Association{
			{Kind: "has_many", Name: "posts", ClassName: "Post", ForeignKey: strp("user_id"), PrimaryKey: strp("id")},
		},
		validators: []model.Validator{
			{Kind: "ActiveRecord::Validations::PresenceValidator", Attributes: []string{"email"}, Options: map[string]any{}},
		},
	}
}

func postModel() *fakeModel {
	return &fakeModel{
		name:  "Post",
		table: "posts",
		pk:    "id",
		columns: []model.Column{
			{Name: "id", Type: "integer", SQLType: "INTEGER"},
			{Name: "user_id", Type: "integer", SQLType: "integer", Null: true},
			{Name: "title", Type: "string", SQLType: "varchar", Null: true},
			{Name: "content", Type: "text", SQLType: "text", Null: true},
		},
		associations: []model.Association{
			{Kind: "belongs_to", Name: "user", ClassName: "User", ForeignKey: strp("user_id"), PrimaryKey: strp("id")},
		},
		validators: []model.Validator{
			{Kind: "PresenceValidator", Attributes: []string{"title"}},
			{Kind: "LengthValidator", Attributes: []string{"title"}, Options: map[string]any{"minimum": 5}},
		},
	}
}
