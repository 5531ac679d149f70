package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"appwrap/internal/introspect"
)

var testdialect string = "testdialect"

type testExtractor struct{}

func (testExtractor) Extract(ctx context.Context, dbConn *sql.DB) (introspect.Schema, error) {
	var s introspect.Schema
	return s, errors.New("not implemented")
}

// tableExtractor lists the tables of a SQLite connection without column detail.
type tableExtractor struct{}

func (tableExtractor) Extract(ctx context.Context, dbConn *sql.DB) (introspect.Schema, error) {
	var s introspect.Schema
	rows, err := dbConn.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return s, err
	}
	defer rows.Close()
	for rows.Next() {
		var tab introspect.Table
		if err := rows.Scan(&tab.Name); err != nil {
			return s, err
		}
		s.Tables = append(s.Tables, tab)
	}
	return s, rows.Err()
}

func TestRegister(t *testing.T) {
	// tests both Register and RegisteredDialects because they take the same setup

	Register(testdialect, testExtractor{})

	if _, ok := dialects[testdialect]; !ok {
		t.Errorf("\ndialect %v not registered correctly in %v", testdialect, dialects)
	}

	rd := RegisteredDialects()

	if !(len(rd) == 1 && rd[0] == testdialect) {
		t.Errorf("\nRegisteredDialects returned unexpected result %v", rd)
	}
}

func TestConnectAndExtract(t *testing.T) {

	var tests = []struct {
		name          string
		dialect       string
		dsn           string
		timeout       int
		registerFirst bool
		errIsNil      bool
	}{
		{"unregistered dialect", testdialect, "", 10, false, false},
		{"sqlite with testExtractor", "sqlite", ":memory:", 10, true, false},
		{"unknown driver alias", "nosuchdb", "", 10, false, false},
	}

	for _, tt := range tests {
		// Use t.Run to run each case as a subtest with a descriptive name
		t.Run(tt.name, func(t *testing.T) {
			if tt.registerFirst {
				Register(tt.dialect, testExtractor{})
			}

			_, err := ConnectAndExtract(context.Background(), tt.dialect, tt.dsn, tt.timeout)

			if (err == nil) != tt.errIsNil {
				if tt.errIsNil {
					t.Errorf("\ngot unexpected error: \"%v\"", err)
				} else {
					t.Errorf("\nexpected an error, did not receive one")
				}
			}
		})
	}
}

func TestConnectAndExtractReadsSchema(t *testing.T) {
	// sqlite3 is normalised to the sqlite key
	Register("sqlite", tableExtractor{})

	s, err := ConnectAndExtract(context.Background(), "sqlite3", ":memory:", 10)
	if err != nil {
		t.Fatalf("\ngot unexpected error: \"%v\"", err)
	}
	if len(s.Tables) != 0 {
		t.Errorf("\ngot tables %v from an empty database", s.Tables)
	}
}

func TestConnectAndExtractCancelled(t *testing.T) {
	Register("sqlite", tableExtractor{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ConnectAndExtract(ctx, "sqlite", ":memory:", 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("\ngot error %v, wanted %v", err, context.Canceled)
	}
}
