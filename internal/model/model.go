// Package model defines the read-only descriptor API that a host environment
// exposes to the snapshot engine.
package model

import "context"

// Registry is the host's catalog of model descriptors.
type Registry interface {
	// Load forces full registration of every model. It is called once,
	// before Descriptors.
	Load(ctx context.Context) error

	// Descriptors enumerates all registered models in no particular order.
	Descriptors() ([]Descriptor, error)
}

// Descriptor describes one persisted entity type.
type Descriptor interface {
	Name() string
	TableName() string

	// PrimaryKey is the single primary key column, or "" when the model has
	// none or a composite one.
	PrimaryKey() string

	Abstract() bool
	TableExists() (bool, error)

	// Columns are returned in physical table order.
	Columns() ([]Column, error)
	Associations() ([]Association, error)
	Validators() ([]Validator, error)
}

// Column is a physical column as reflected by the host.
type Column struct {
	Name    string
	Type    string // logical, backend-agnostic type
	SQLType string
	Null    bool
	Default any
}

// Association is a declared relationship. Kind is the relationship macro,
// e.g. "belongs_to" or "has_many".
type Association struct {
	Kind       string
	Name       string
	ClassName  string
	ForeignKey *string
	PrimaryKey *string
}

// Validator is a validation rule attached to one or more attributes.
// Kind is the implementation identifier, e.g. "PresenceValidator".
type Validator struct {
	Kind       string
	Attributes []string
	Options    map[string]any
}
