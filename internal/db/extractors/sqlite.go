package extractors

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"appwrap/internal/db"
	"appwrap/internal/introspect"
	"appwrap/internal/logger"
)

// sqliteExtractor implements Extractor for SQLite.
type sqliteExtractor struct{}

// This is the extractor for SQLite
func (sqliteExtractor) Extract(ctx context.Context, dbConn *sql.DB) (introspect.Schema, error) {
	var s introspect.Schema

	tr, err := dbConn.QueryContext(ctx, `
	    SELECT name
		FROM sqlite_master
		WHERE type = 'table'
		AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return s, fmt.Errorf("query tables: %w", err)
	}
	defer tr.Close()

	for tr.Next() {
		var tab introspect.Table
		if err := tr.Scan(&tab.Name); err != nil {
			return s, fmt.Errorf("scan table row: %w", err)
		}
		s.Tables = append(s.Tables, tab)
	}
	if err := tr.Err(); err != nil {
		return s, fmt.Errorf("read tables: %w", err)
	}

	for i := range s.Tables {
		t := &s.Tables[i]
		tiQuery := fmt.Sprintf("PRAGMA main.table_info('%s')", strings.ReplaceAll(t.Name, "'", "''"))
		pr, err := dbConn.QueryContext(ctx, tiQuery)
		if err != nil {
			return s, fmt.Errorf("query columns for %s: %w", t.Name, err)
		}
		for pr.Next() {
			var cid int
			var name, ctype string
			var notnull, pk int
			var dflt sql.NullString
			if err := pr.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
				pr.Close()
				return s, fmt.Errorf("scan column for %s: %w", t.Name, err)
			}
			col := introspect.Column{
				Name:     name,
				Type:     ctype,
				Nullable: notnull == 0,
				PK:       pk != 0,
			}
			if dflt.Valid {
				col.Default = &dflt.String
			}
			t.Columns = append(t.Columns, col)
		}
		err = pr.Err()
		pr.Close()
		if err != nil {
			return s, fmt.Errorf("read columns for %s: %w", t.Name, err)
		}
		if len(t.Columns) == 0 {
			logger.Warn("table %s has no columns", t.Name)
		}
	}

	return s, nil
}

func init() {
	db.Register("sqlite3", sqliteExtractor{})
	db.Register("sqlite", sqliteExtractor{})
}
