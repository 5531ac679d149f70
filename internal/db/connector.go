package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"appwrap/internal/introspect"
	"appwrap/pkg/config"
)

type Extractor interface {

	// Extract reads table and column metadata from the connected database
	Extract(ctx context.Context, db *sql.DB) (introspect.Schema, error)
}

var dialects = map[string]Extractor{}

// Register makes an Extractor available under name.
func Register(name string, e Extractor) {
	dialects[strings.ToLower(name)] = e
}

// listRegistered returns the registered dialect keys, sorted (for diagnostics).
func listRegistered() []string {
	keys := make([]string, 0, len(dialects))
	for k := range dialects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ConnectAndExtract connects to the database and reads its schema metadata
// within timeoutSec, or until ctx is done. Only catalog tables are queried,
// never row data.
func ConnectAndExtract(ctx context.Context, driver, dsn string, timeoutSec int) (introspect.Schema, error) {
	driver = config.NormalizeDriver(driver)
	extractor, ok := dialects[driver]
	if !ok {
		return introspect.Schema{}, fmt.Errorf("dialect not registered: %q (available: %v)", driver, listRegistered())
	}
	dbConn, err := sql.Open(driver, dsn)
	if err != nil {
		return introspect.Schema{}, err
	}
	defer dbConn.Close()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSec)*time.Second)
	defer cancel()
	if err := dbConn.PingContext(ctx); err != nil {
		return introspect.Schema{}, err
	}
	return extractor.Extract(ctx, dbConn)
}

// RegisteredDialects is a helper that allows main to print registered dialects
func RegisteredDialects() []string {
	return listRegistered()
}
