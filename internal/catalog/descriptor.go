package catalog

import (
	"fmt"

	"appwrap/internal/inflect"
	"appwrap/internal/introspect"
	"appwrap/internal/model"
)

// defaultPrimaryKey is assumed for association targets that are not declared
// in the manifest.
const defaultPrimaryKey = "id"

type descriptor struct {
	spec ModelSpec
	cat  *Catalog
}

func (d *descriptor) Name() string { return d.spec.Name }

func (d *descriptor) TableName() string {
	if d.spec.TableName != "" {
		return d.spec.TableName
	}
	return inflect.Tableize(d.spec.Name)
}

func (d *descriptor) Abstract() bool { return d.spec.Abstract }

// PrimaryKey is the declared key, otherwise the table's key when it has
// exactly one column.
func (d *descriptor) PrimaryKey() string {
	if d.spec.PrimaryKey != nil {
		return *d.spec.PrimaryKey
	}
	t, ok, err := d.table()
	if !ok || err != nil {
		return ""
	}
	if pk := t.PrimaryKey(); len(pk) == 1 {
		return pk[0]
	}
	return ""
}

func (d *descriptor) TableExists() (bool, error) {
	_, ok, err := d.table()
	return ok, err
}

func (d *descriptor) table() (introspect.Table, bool, error) {
	return d.cat.schema.Lookup(d.TableName())
}

func (d *descriptor) Columns() ([]model.Column, error) {
	t, ok, err := d.table()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("table %q not found", d.TableName())
	}
	cols := make([]model.Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		cols = append(cols, model.Column{
			Name:    c.Name,
			Type:    introspect.LogicalType(c.Type),
			SQLType: c.Type,
			Null:    c.Nullable,
			Default: introspect.NormalizeDefault(c.Default),
		})
	}
	return cols, nil
}

// Associations resolves class names and keys the way Rails infers them
// when the manifest leaves them out.
func (d *descriptor) Associations() ([]model.Association, error) {
	out := make([]model.Association, 0, len(d.spec.Associations))
	for i, a := range d.spec.Associations {
		if a.Name == "" {
			return nil, fmt.Errorf("association %d has no name", i)
		}
		if a.Kind == "" {
			return nil, fmt.Errorf("association %s has no kind", a.Name)
		}
		className := a.ClassName
		if className == "" {
			className = inflect.Classify(a.Name)
		}
		out = append(out, model.Association{
			Kind:       a.Kind,
			Name:       a.Name,
			ClassName:  className,
			ForeignKey: firstNonNil(a.ForeignKey, d.inferForeignKey(a)),
			PrimaryKey: firstNonNil(a.PrimaryKey, d.inferPrimaryKey(a.Kind, className)),
		})
	}
	return out, nil
}

func (d *descriptor) inferForeignKey(a AssociationSpec) *string {
	switch inflect.Underscore(a.Kind) {
	case "belongs_to":
		return ptr(inflect.ForeignKey(a.Name))
	case "has_many", "has_one", "has_and_belongs_to_many":
		return ptr(inflect.ForeignKey(d.spec.Name))
	}
	return nil
}

// inferPrimaryKey is the target model's primary key. Join-table relations
// have none unless declared.
func (d *descriptor) inferPrimaryKey(kind, className string) *string {
	switch inflect.Underscore(kind) {
	case "belongs_to", "has_many", "has_one":
	default:
		return nil
	}
	target, ok := d.cat.lookup(className)
	if !ok {
		return ptr(defaultPrimaryKey)
	}
	if pk := target.PrimaryKey(); pk != "" {
		return ptr(pk)
	}
	return nil
}

// Validators lists explicit validations first, then the expanded shorthand.
func (d *descriptor) Validators() ([]model.Validator, error) {
	specs := append([]ValidationSpec{}, d.spec.Validations...)
	for _, v := range d.spec.Validates {
		specs = append(specs, v.expand()...)
	}

	out := make([]model.Validator, 0, len(specs))
	for i, v := range specs {
		if v.Kind == "" {
			return nil, fmt.Errorf("validation %d has no kind", i)
		}
		if len(v.Attributes) == 0 {
			return nil, fmt.Errorf("validation %s has no attributes", v.Kind)
		}
		out = append(out, model.Validator{
			Kind:       v.Kind,
			Attributes: v.Attributes,
			Options:    v.Options,
		})
	}
	return out, nil
}

func ptr(s string) *string { return &s }

func firstNonNil(vals ...*string) *string {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
