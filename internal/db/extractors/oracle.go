//go:build oracle
// +build oracle

package extractors

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/godror/godror"

	"appwrap/internal/db"
	"appwrap/internal/introspect"
)

// oracleExtractor implements Extractor for Oracle.
type oracleExtractor struct{}

// This is the extractor for Oracle
func (oracleExtractor) Extract(ctx context.Context, dbConn *sql.DB) (introspect.Schema, error) {
	var s introspect.Schema

	if err := dbConn.QueryRowContext(ctx, `SELECT sys_context('USERENV', 'CURRENT_SCHEMA') FROM dual`).Scan(&s.DefaultSchema); err != nil {
		return s, fmt.Errorf("query current schema: %w", err)
	}

	tr, err := dbConn.QueryContext(ctx, `
	    SELECT ausr.username, atab.table_name
	    FROM all_users ausr
	    JOIN all_tables atab
		  ON ausr.username = atab.owner
	    WHERE ausr.oracle_maintained = 'N'
	    ORDER BY ausr.username, atab.table_name`)
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
            SELECT column_name, data_type, nullable, data_default
            FROM all_tab_columns
            WHERE owner = :1 AND table_name = :2
            ORDER BY column_id`, t.Schema, t.Name)
		if err != nil {
			return s, fmt.Errorf("query columns for %s.%s: %w", t.Schema, t.Name, err)
		}
		for cr.Next() {
			var col introspect.Column
			var nullable string
			var dflt sql.NullString
			if err := cr.Scan(&col.Name, &col.Type, &nullable, &dflt); err != nil {
				cr.Close()
				return s, fmt.Errorf("scan column for %s.%s: %w", t.Schema, t.Name, err)
			}
			col.Nullable = (nullable == "Y")
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
            SELECT acc.column_name
            FROM all_cons_columns acc
            JOIN all_constraints ac ON acc.owner = ac.owner AND acc.constraint_name = ac.constraint_name
            WHERE ac.constraint_type = 'P' AND acc.owner = :1 AND acc.table_name = :2`, t.Schema, t.Name)
		if err != nil {
			return s, fmt.Errorf("query primary key for %s.%s: %w", t.Schema, t.Name, err)
		}
		if err := markPrimaryKeys(t, pkr); err != nil {
			return s, fmt.Errorf("read primary key for %s.%s: %w", t.Schema, t.Name, err)
		}
	}

	return s, nil
}

func init() {
	db.Register("godror", oracleExtractor{})
	db.Register("oracle", oracleExtractor{})
}
