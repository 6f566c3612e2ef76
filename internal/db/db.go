package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/c1assist/internal/errors"
	_ "modernc.org/sqlite"
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Prepare(query string) (*sql.Stmt, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Open opens an existing session database for reading and writing.
// The file is never created: a missing file is a connection failure.
// Callers must Close the returned handle.
func Open(path string) (*sql.DB, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewDBConnectFailed(path, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, errors.NewDBConnectFailed(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.NewDBConnectFailed(path, fmt.Errorf("not a regular file"))
	}

	db, err := sql.Open("sqlite", dsn(absPath))
	if err != nil {
		return nil, errors.NewDBConnectFailed(path, err)
	}
	// One caller, one connection.
	db.SetMaxOpenConns(1)

	// sql.Open is lazy; touching sqlite_master also rejects files that are
	// not SQLite databases.
	var n int
	if err := db.QueryRow("SELECT count(*) FROM sqlite_master").Scan(&n); err != nil {
		db.Close()
		return nil, errors.NewDBConnectFailed(path, err)
	}

	return db, nil
}

// dsn builds a file: URI so that mode=rw is honored and paths containing
// spaces, '?' or '#' are escaped.
func dsn(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths: file:///C:/...
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String() + "?mode=rw&_pragma=busy_timeout(5000)"
}
