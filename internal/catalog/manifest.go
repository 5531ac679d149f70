package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"appwrap/internal/inflect"
)

// Manifest is the YAML declaration of the application's models.
type Manifest struct {
	Models []ModelSpec `yaml:"models"`
}

// ModelSpec declares one model. Columns are never declared; they are read
// from the database.
type ModelSpec struct {
	Name         string            `yaml:"name"`
	TableName    string            `yaml:"table_name"`
	PrimaryKey   *string           `yaml:"primary_key"` // "" declares no primary key
	Abstract     bool              `yaml:"abstract"`
	Associations []AssociationSpec `yaml:"associations"`
	Validations  []ValidationSpec  `yaml:"validations"`
	Validates    []ValidatesSpec   `yaml:"validates"`
}

type AssociationSpec struct {
	Kind       string  `yaml:"kind"`
	Name       string  `yaml:"name"`
	ClassName  string  `yaml:"class_name"`
	ForeignKey *string `yaml:"foreign_key"`
	PrimaryKey *string `yaml:"primary_key"`
}

// ValidationSpec declares a validator explicitly by kind.
type ValidationSpec struct {
	Kind       string         `yaml:"kind"`
	Attributes []string       `yaml:"attributes"`
	Options    map[string]any `yaml:"options"`
}

// ValidatesSpec is the shorthand form:
//
//	- attributes: [title]
//	  presence: true
//	  length: {minimum: 5}
type ValidatesSpec struct {
	Attributes []string       `yaml:"attributes"`
	Rules      map[string]any `yaml:",inline"`
}

// LoadManifest reads and decodes a manifest file.
func LoadManifest(path string) (Manifest, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	return ParseManifest(f)
}

// ParseManifest decodes a manifest, rejecting unknown keys and unnamed models.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	for i, spec := range m.Models {
		if spec.Name == "" {
			return Manifest{}, fmt.Errorf("parse manifest: model %d has no name", i)
		}
	}
	return m, nil
}

// expand turns the shorthand into explicit validators, one per rule, with
// rules in name order. A rule value of true means no options, a mapping is
// the options, a list means {in: list} and any other value means {with: value}.
// false disables the rule.
func (v ValidatesSpec) expand() []ValidationSpec {
	rules := make([]string, 0, len(v.Rules))
	for k := range v.Rules {
		rules = append(rules, k)
	}
	sort.Strings(rules)

	out := make([]ValidationSpec, 0, len(rules))
	for _, rule := range rules {
		var opts map[string]any
		switch val := v.Rules[rule].(type) {
		case bool:
			if !val {
				continue
			}
			opts = map[string]any{}
		case map[string]any:
			opts = val
		case []any:
			opts = map[string]any{"in": val}
		case nil:
			opts = map[string]any{}
		default:
			opts = map[string]any{"with": val}
		}
		out = append(out, ValidationSpec{
			Kind:       inflect.Camelize(rule) + "Validator",
			Attributes: v.Attributes,
			Options:    opts,
		})
	}
	return out
}
