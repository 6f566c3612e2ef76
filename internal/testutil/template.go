// Package testutil builds session database templates for tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// PathLocationSchema mirrors the capture application's path location table.
const PathLocationSchema = `
CREATE TABLE ZPATHLOCATION (
	Z_PK INTEGER PRIMARY KEY,
	Z_ENT INTEGER,
	Z_OPT INTEGER,
	ZISRELATIVE INTEGER,
	ZRELATIVEPATH VARCHAR,
	ZVOLUME VARCHAR,
	ZWINATTRIBUTE VARCHAR,
	ZWINROOT VARCHAR
);
CREATE TABLE Z_PRIMARYKEY (
	Z_ENT INTEGER PRIMARY KEY,
	Z_NAME VARCHAR,
	Z_SUPER INTEGER,
	Z_MAX INTEGER
);
`

// Row is a pre-existing path location row.
type Row struct {
	Key  int64
	Path string
}

// NewTemplate creates dir/name as a session database with the path location
// table and the given rows. It returns the file path.
func NewTemplate(t *testing.T, dir, name string, rows ...Row) string {
	t.Helper()
	return NewDatabase(t, filepath.Join(dir, name), PathLocationSchema, rows...)
}

// NewDatabase creates a database at path using schema, then inserts rows into
// ZPATHLOCATION when any are given.
func NewDatabase(t *testing.T, path, schema string, rows ...Row) string {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	if schema != "" {
		if _, err := db.Exec(schema); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	} else {
		// Force the file into existence as a valid empty database.
		if _, err := db.Exec("PRAGMA user_version = 1"); err != nil {
			t.Fatalf("init empty database: %v", err)
		}
	}

	for _, r := range rows {
		_, err := db.Exec(
			"INSERT INTO ZPATHLOCATION (Z_PK, Z_ENT, ZRELATIVEPATH, ZISRELATIVE, ZVOLUME) VALUES (?, 38, ?, 1, '')",
			r.Key, r.Path,
		)
		if err != nil {
			t.Fatalf("seed row %d: %v", r.Key, err)
		}
	}

	return path
}

// Count returns the number of rows in ZPATHLOCATION.
func Count(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT count(*) FROM ZPATHLOCATION").Scan(&n); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

// Exec runs a statement against the database at path.
func Exec(t *testing.T, path, stmt string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(stmt); err != nil {
		t.Fatalf("exec: %v", err)
	}
}
