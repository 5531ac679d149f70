package extractors

import (
	"context"
	"database/sql"
	"fmt"

	"appwrap/internal/db"
	"appwrap/internal/introspect"
)

// pgExtractor implements Extractor using information_schema + pg_catalog queries.
type pgExtractor struct{}

// This is the extractor for PostgreSQL
func (pgExtractor) Extract(ctx context.Context, dbConn *sql.DB) (introspect.Schema, error) {
	var s introspect.Schema

	if err := dbConn.QueryRowContext(ctx, `SELECT current_schema()`).Scan(&s.DefaultSchema); err != nil {
		return s, fmt.Errorf("query current schema: %w", err)
	}

	tr, err := dbConn.QueryContext(ctx, `
        SELECT table_schema, table_name
        FROM information_schema.tables
        WHERE table_type = 'BASE TABLE'
          AND table_schema NOT IN ('pg_catalog','information_schema','pg_toast')
        ORDER BY table_schema, table_name`)
	if err != nil {
		return s, fmt.Errorf("query tables: %w", err)
	}
	defer tr.Close()

	for tr.Next() {
		var tab introspect.Table
		if err := tr.Scan(&tab.Schema, &tab.Name); err != nil {
			return s, fmt.Errorf("scan table row: %w", err)
		}
		s.Tables = append(s.Tables, tab)
	}
	if err := tr.Err(); err != nil {
		return s, fmt.Errorf("read tables: %w", err)
	}

	for i := range s.Tables {
		t := &s.Tables[i]
		cr, err := dbConn.QueryContext(ctx, `
            SELECT column_name, data_type, is_nullable = 'YES', column_default
            FROM information_schema.columns
            WHERE table_schema = $1 AND table_name = $2
            ORDER BY ordinal_position`, t.Schema, t.Name)
		if err != nil {
			return s, fmt.Errorf("query columns for %s.%s: %w", t.Schema, t.Name, err)
		}
		for cr.Next() {
			var col introspect.Column
			var dflt sql.NullString
			if err := cr.Scan(&col.Name, &col.Type, &col.Nullable, &dflt); err != nil {
				cr.Close()
				return s, fmt.Errorf("scan column for %s.%s: %w", t.Schema, t.Name, err)
			}
			if dflt.Valid {
				col.Default = &dflt.String
			}
			t.Columns = append(t.Columns, col)
		}
		err = cr.Err()
		cr.Close()
		if err != nil {
			return s, fmt.Errorf("read columns for %s.%s: %w", t.Schema, t.Name, err)
		}

		pkr, err := dbConn.QueryContext(ctx, `
            SELECT a.attname
            FROM pg_index i
            JOIN pg_class c ON i.indrelid = c.oid
            JOIN pg_namespace ns ON c.relnamespace = ns.oid
            JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = ANY(i.indkey)
            WHERE ns.nspname = $1 AND c.relname = $2 AND i.indisprimary`, t.Schema, t.Name)
		if err != nil {
			return s, fmt.Errorf("query primary key for %s.%s: %w", t.Schema, t.Name, err)
		}
		if err := markPrimaryKeys(t, pkr); err != nil {
			return s, fmt.Errorf("read primary key for %s.%s: %w", t.Schema, t.Name, err)
		}
	}

	return s, nil
}

// markPrimaryKeys flags the columns named by the rows of a primary key query
// and closes the rows. A key column missing from t is an error.
func markPrimaryKeys(t *introspect.Table, pkr *sql.Rows) error {
	defer pkr.Close()
	for pkr.Next() {
		var pkcol string
		if err := pkr.Scan(&pkcol); err != nil {
			return err
		}
		found := false
		for j := range t.Columns {
			if t.Columns[j].Name == pkcol {
				t.Columns[j].PK = true
				found = true
			}
		}
		if !found {
			return fmt.Errorf("primary key column %q not among the columns", pkcol)
		}
	}
	return pkr.Err()
}

func init() {
	db.Register("postgres", pgExtractor{})
	db.Register("postgresql", pgExtractor{})
}
