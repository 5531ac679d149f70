package extractors

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"appwrap/internal/db"
	"appwrap/internal/introspect"
)

// myExtractor implements Extractor for MySQL (information_schema).
type myExtractor struct{}

// This is the extractor for MySQL
func (myExtractor) Extract(ctx context.Context, dbConn *sql.DB) (introspect.Schema, error) {
	var s introspect.Schema

	var current sql.NullString
	if err := dbConn.QueryRowContext(ctx, `SELECT DATABASE()`).Scan(&current); err != nil {
		return s, fmt.Errorf("query current schema: %w", err)
	}
	s.DefaultSchema = current.String

	tr, err := dbConn.QueryContext(ctx, `
        SELECT table_schema, table_name
        FROM information_schema.tables
        WHERE table_type = 'BASE TABLE'
          AND table_schema = DATABASE()
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
            SELECT column_name, column_type, is_nullable = 'YES', column_default, extra
            FROM information_schema.columns
            WHERE table_schema = ? AND table_name = ?
            ORDER BY ordinal_position`, t.Schema, t.Name)
		if err != nil {
			return s, fmt.Errorf("query columns for %s.%s: %w", t.Schema, t.Name, err)
		}
		for cr.Next() {
			var col introspect.Column
			var dflt sql.NullString
			var extra string
			if err := cr.Scan(&col.Name, &col.Type, &col.Nullable, &dflt, &extra); err != nil {
				cr.Close()
				return s, fmt.Errorf("scan column for %s.%s: %w", t.Schema, t.Name, err)
			}
			col.Default = mysqlDefault(dflt, extra)
			t.Columns = append(t.Columns, col)
		}
		err = cr.Err()
		cr.Close()
		if err != nil {
			return s, fmt.Errorf("read columns for %s.%s: %w", t.Schema, t.Name, err)
		}

		pkr, err := dbConn.QueryContext(ctx, `
            SELECT k.COLUMN_NAME
            FROM information_schema.key_column_usage k
            JOIN information_schema.table_constraints tc ON k.constraint_name = tc.constraint_name AND k.table_schema = tc.table_schema AND k.table_name = tc.table_name
            WHERE tc.constraint_type = 'PRIMARY KEY' AND k.table_schema = ? AND k.table_name = ?
            ORDER BY k.ordinal_position`, t.Schema, t.Name)
		if err != nil {
			return s, fmt.Errorf("query primary key for %s.%s: %w", t.Schema, t.Name, err)
		}
		if err := markPrimaryKeys(t, pkr); err != nil {
			return s, fmt.Errorf("read primary key for %s.%s: %w", t.Schema, t.Name, err)
		}
	}

	return s, nil
}

// mysqlDefault quotes literal defaults; information_schema reports them bare
// and flags computed ones in extra.
func mysqlDefault(dflt sql.NullString, extra string) *string {
	if !dflt.Valid {
		return nil
	}
	v := dflt.String
	if !strings.Contains(strings.ToUpper(extra), "DEFAULT_GENERATED") && !strings.EqualFold(v, "CURRENT_TIMESTAMP") {
		v = introspect.QuoteLiteral(v)
	}
	return &v
}

func init() {
	db.Register("mysql", myExtractor{})
	db.Register("mariadb", myExtractor{})
}
