package extractors

import (
	"context"
	"database/sql"
	"fmt"

	"appwrap/internal/db"
	"appwrap/internal/introspect"
)

// mssqlExtractor implements Extractor for Microsoft SQL Server.
type mssqlExtractor struct{}

// This is the extractor for Microsoft SQL Server
func (mssqlExtractor) Extract(ctx context.Context, dbConn *sql.DB) (introspect.Schema, error) {
	var s introspect.Schema

	if err := dbConn.QueryRowContext(ctx, `SELECT SCHEMA_NAME()`).Scan(&s.DefaultSchema); err != nil {
		return s, fmt.Errorf("query current schema: %w", err)
	}

	// list tables with schema
	tr, err := dbConn.QueryContext(ctx, `
        SELECT s.name AS schema_name, t.name AS table_name
        FROM sys.schemas AS s
        JOIN sys.tables AS t
		  ON s.schema_id = t.schema_id
        ORDER BY s.name, t.name`)
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

	// columns and PKs for each table
	for i := range s.Tables {
		t := &s.Tables[i]

		cr, err := dbConn.QueryContext(ctx, `
            SELECT COLUMN_NAME, DATA_TYPE, CASE WHEN IS_NULLABLE='YES' THEN 1 ELSE 0 END, COLUMN_DEFAULT
            FROM INFORMATION_SCHEMA.COLUMNS
            WHERE TABLE_SCHEMA = @schema AND TABLE_NAME = @table
            ORDER BY ORDINAL_POSITION`, sql.Named("schema", t.Schema), sql.Named("table", t.Name))
		if err != nil {
			return s, fmt.Errorf("query columns for %s.%s: %w", t.Schema, t.Name, err)
		}

		for cr.Next() {
			var col introspect.Column
			var nullableInt int
			var dflt sql.NullString
			if err := cr.Scan(&col.Name, &col.Type, &nullableInt, &dflt); err != nil {
				cr.Close()
				return s, fmt.Errorf("scan column for %s.%s: %w", t.Schema, t.Name, err)
			}
			col.Nullable = nullableInt == 1
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

		// primary keys
		pkr, err := dbConn.QueryContext(ctx, `
            SELECT k.COLUMN_NAME
            FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS t
            JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE k ON t.CONSTRAINT_NAME = k.CONSTRAINT_NAME AND t.TABLE_SCHEMA = k.TABLE_SCHEMA
            WHERE t.CONSTRAINT_TYPE = 'PRIMARY KEY' AND k.TABLE_SCHEMA = @schema AND k.TABLE_NAME = @table`, sql.Named("schema", t.Schema), sql.Named("table", t.Name))
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
	db.Register("sqlserver", mssqlExtractor{})
	db.Register("mssql", mssqlExtractor{})
}
