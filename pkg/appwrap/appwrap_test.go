package appwrap

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appwrap/pkg/config"
)

const appConfig = `
database:
  type: sqlite3
  database_name: db/development.sqlite3
`

const models = `
models:
  - name: User
    associations:
      - kind: has_many
        name: posts
    validates:
      - attributes: [email]
        presence: true
  - name: Post
    associations:
      - kind: belongs_to
        name: user
    validates:
      - attributes: [title]
        presence: true
`

// newApp lays out a model root with a SQLite database holding users and posts.
func newApp(t *testing.T, manifest string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "db"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, config.DefaultFileName), []byte(appConfig), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, config.DefaultManifest), []byte(manifest), 0o644))

	conn, err := sql.Open("sqlite", filepath.Join(root, "db", "development.sqlite3"))
	require.NoError(t, err)
	defer conn.Close()
	for _, stmt := range []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY NOT NULL, email varchar NOT NULL, name varchar,
			created_at datetime(6) NOT NULL, updated_at datetime(6) NOT NULL)`,
		`CREATE TABLE posts (id INTEGER PRIMARY KEY NOT NULL, user_id integer, title varchar, content text,
			created_at datetime(6) NOT NULL, updated_at datetime(6) NOT NULL)`,
	} {
		_, err := conn.Exec(stmt)
		require.NoError(t, err)
	}
	return root
}

func readSnapshot(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		out = append(out, rec)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestExtract(t *testing.T) {
	root := newApp(t, models)

	n, err := Extract(context.Background(), root, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recs := readSnapshot(t, filepath.Join(root, "appwrap", "routes.jsonl"))
	require.Len(t, recs, 2)
	assert.Equal(t, "Post", recs[0]["name"])
	assert.Equal(t, "User", recs[1]["name"])

	user := recs[1]
	assert.Equal(t, "users", user["table_name"])
	cols := user["columns"].([]any)
	require.Len(t, cols, 5)
	id := cols[0].(map[string]any)
	assert.Equal(t, "id", id["name"])
	assert.Equal(t, true, id["primary"])
	email := cols[1].(map[string]any)
	assert.Equal(t, "string", email["type"])
	assert.Equal(t, "varchar", email["sql_type"])
	assert.Equal(t, false, email["null"])
	assert.Nil(t, email["default"])
	assert.Equal(t, "datetime", cols[3].(map[string]any)["type"])

	hasMany := user["associations"].(map[string]any)["has_many"].([]any)
	require.Len(t, hasMany, 1)
	assert.Equal(t, map[string]any{"name": "posts", "class_name": "Post", "foreign_key": "user_id", "primary_key": "id"}, hasMany[0])

	belongsTo := recs[0]["associations"].(map[string]any)["belongs_to"].([]any)
	require.Len(t, belongsTo, 1)
	assert.Equal(t, "user", belongsTo[0].(map[string]any)["name"])

	assert.Equal(t, []any{map[string]any{"attribute": "email", "type": "presence", "options": map[string]any{}}}, user["validations"])
}

func TestExtractCustomOutputDir(t *testing.T) {
	root := newApp(t, models)

	n, err := Extract(context.Background(), root, "build/schema")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.FileExists(t, filepath.Join(root, "build", "schema", "routes.jsonl"))
}

func TestExtractModelsWithoutRules(t *testing.T) {
	root := newApp(t, "models:\n  - name: User\n  - name: Post\n  - name: Comment\n")

	n, err := Extract(context.Background(), root, "")
	require.NoError(t, err)
	// comments has no table
	assert.Equal(t, 2, n)

	for _, rec := range readSnapshot(t, filepath.Join(root, "appwrap", "routes.jsonl")) {
		assert.Equal(t, []any{}, rec["validations"])
		assocs := rec["associations"].(map[string]any)
		assert.Len(t, assocs, 4)
		for key, list := range assocs {
			assert.Equal(t, []any{}, list, key)
		}
	}
}

func TestExtractFailures(t *testing.T) {
	var tests = []struct {
		name  string
		setup func(t *testing.T, root string)
	}{
		{"missing manifest", func(t *testing.T, root string) {
			require.NoError(t, os.Remove(filepath.Join(root, config.DefaultManifest)))
		}},
		{"unsupported database", func(t *testing.T, root string) {
			cfg := "database:\n  type: cassandra\n  host: localhost\n"
			require.NoError(t, os.WriteFile(filepath.Join(root, config.DefaultFileName), []byte(cfg), 0o644))
		}},
		{"broken association", func(t *testing.T, root string) {
			manifest := "models:\n  - name: User\n    associations:\n      - kind: has_many\n"
			require.NoError(t, os.WriteFile(filepath.Join(root, config.DefaultManifest), []byte(manifest), 0o644))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newApp(t, models)
			tt.setup(t, root)

			n, err := Extract(context.Background(), root, "")
			assert.Error(t, err)
			assert.Zero(t, n)
			assert.NoFileExists(t, filepath.Join(root, "appwrap", "routes.jsonl"))
		})
	}
}
