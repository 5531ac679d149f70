package extract

import (
	"fmt"

	"github.com/google/uuid"

	"appwrap/internal/logger"
	"appwrap/internal/model"
)

// classOption is the implicit owning-class reference some hosts add to
// validator options.
const classOption = "class"

// Normalize builds the canonical snapshot of one model. Apart from the uuid,
// the result depends only on the descriptor.
func Normalize(d model.Descriptor) (ModelSnapshot, error) {
	id, err := newUUID()
	if err != nil {
		return ModelSnapshot{}, err
	}
	snap := ModelSnapshot{
		UUID:      id,
		Name:      d.Name(),
		TableName: d.TableName(),
	}

	if snap.Columns, err = normalizeColumns(d); err != nil {
		return ModelSnapshot{}, fmt.Errorf("%w: columns of %s: %w", ErrReflection, snap.Name, err)
	}
	if snap.Associations, err = normalizeAssociations(d); err != nil {
		return ModelSnapshot{}, fmt.Errorf("%w: associations of %s: %w", ErrReflection, snap.Name, err)
	}
	if snap.Validations, err = normalizeValidations(d); err != nil {
		return ModelSnapshot{}, fmt.Errorf("%w: validations of %s: %w", ErrReflection, snap.Name, err)
	}
	return snap, nil
}

func normalizeColumns(d model.Descriptor) ([]ColumnInfo, error) {
	cols, err := d.Columns()
	if err != nil {
		return nil, err
	}
	pk := d.PrimaryKey()
	out := make([]ColumnInfo, 0, len(cols))
	for _, c := range cols {
		out = append(out, ColumnInfo{
			Name:    c.Name,
			Type:    c.Type,
			SQLType: c.SQLType,
			Null:    c.Null,
			Default: c.Default,
			Primary: pk != "" && c.Name == pk,
		})
	}
	return out, nil
}

func normalizeAssociations(d model.Descriptor) (AssociationSet, error) {
	set := AssociationSet{
		BelongsTo:           []AssociationInfo{},
		HasMany:             []AssociationInfo{},
		HasOne:              []AssociationInfo{},
		HasAndBelongsToMany: []AssociationInfo{},
	}
	assocs, err := d.Associations()
	if err != nil {
		return set, err
	}
	for _, a := range assocs {
		info := AssociationInfo{
			Name:       a.Name,
			ClassName:  a.ClassName,
			ForeignKey: a.ForeignKey,
			PrimaryKey: a.PrimaryKey,
		}
		kind, ok := ParseAssociationKind(a.Kind)
		if !ok {
			logger.Warn("model %s: dropping association %s with unsupported kind %q", d.Name(), a.Name, a.Kind)
			continue
		}
		switch kind {
		case BelongsTo:
			set.BelongsTo = append(set.BelongsTo, info)
		case HasMany:
			set.HasMany = append(set.HasMany, info)
		case HasOne:
			set.HasOne = append(set.HasOne, info)
		case HasAndBelongsToMany:
			set.HasAndBelongsToMany = append(set.HasAndBelongsToMany, info)
		}
	}
	return set, nil
}

// normalizeValidations emits one record per (validator, attribute) pair.
func normalizeValidations(d model.Descriptor) ([]ValidationInfo, error) {
	validators, err := d.Validators()
	if err != nil {
		return nil, err
	}
	out := []ValidationInfo{}
	for _, v := range validators {
		kind := ParseValidationKind(v.Kind)
		if kind == Unknown {
			logger.Debug("model %s: validator %q has no known kind", d.Name(), v.Kind)
		}
		for _, attr := range v.Attributes {
			out = append(out, ValidationInfo{
				Attribute: attr,
				Type:      kind,
				Options:   validatorOptions(v.Options),
			})
		}
	}
	return out, nil
}

// validatorOptions copies opts without the class reference. Nested values
// are shared, not copied.
func validatorOptions(opts map[string]any) map[string]any {
	out := make(map[string]any, len(opts))
	for k, v := range opts {
		if k == classOption {
			continue
		}
		out[k] = v
	}
	return out
}

func newUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return id.String(), nil
}
