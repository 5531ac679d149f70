package introspect

import "fmt"

// Column represents a table column as read from the database catalog.
type Column struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default,omitempty"` // raw default expression, nil when none
	PK       bool    `json:"pk"`
}

// Table represents a database table and its columns in ordinal order.
type Table struct {
	Schema  string   `json:"schema,omitempty"`
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// PrimaryKey returns the primary key column names in column order.
func (t Table) PrimaryKey() []string {
	var pk []string
	for _, c := range t.Columns {
		if c.PK {
			pk = append(pk, c.Name)
		}
	}
	return pk
}

// Schema is the table metadata extracted from one connection.
type Schema struct {
	// DefaultSchema is the connection's current schema (search path head,
	// database, default schema or owner). Empty for SQLite.
	DefaultSchema string  `json:"default_schema,omitempty"`
	Tables        []Table `json:"tables"`
}

// Lookup finds a table by name. "schema.table" matches exactly. An
// unqualified name resolves to the table in DefaultSchema, otherwise to the
// only table with that name; several candidates outside the default schema
// are an error.
func (s Schema) Lookup(name string) (Table, bool, error) {
	var matches []Table
	for _, t := range s.Tables {
		if t.Schema != "" && t.Schema+"."+t.Name == name {
			return t, true, nil
		}
		if t.Name != name {
			continue
		}
		if s.DefaultSchema != "" && t.Schema == s.DefaultSchema {
			return t, true, nil
		}
		matches = append(matches, t)
	}
	switch len(matches) {
	case 0:
		return Table{}, false, nil
	case 1:
		return matches[0], true, nil
	}
	schemas := make([]string, 0, len(matches))
	for _, t := range matches {
		schemas = append(schemas, t.Schema)
	}
	return Table{}, false, fmt.Errorf("table %q is ambiguous, found in schemas %v", name, schemas)
}
