package db

import (
	"database/sql"

	"github.com/hpungsan/c1assist/internal/errors"
)

// PathLocationTable holds one row per folder the capture application offers
// as a destination.
const PathLocationTable = "ZPATHLOCATION"

const insertLocationSQL = `
	INSERT INTO ZPATHLOCATION
	(Z_ENT, Z_PK, ZRELATIVEPATH, ZISRELATIVE, ZVOLUME, ZWINROOT, ZWINATTRIBUTE)
	VALUES (?, ?, ?, ?, ?, NULL, NULL)
`

// Location is one path location row.
type Location struct {
	EntityType   int64  `json:"entity_type"`
	Key          int64  `json:"key"`
	RelativePath string `json:"relative_path"`
	IsRelative   bool   `json:"is_relative"`
	Volume       string `json:"volume"`
}

// TableExists reports whether a table with the given name exists.
func TableExists(q Querier, table string) (bool, error) {
	var name string
	err := q.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewQueryFailed(err)
	}
	return true, nil
}

// MaxKey returns the highest Z_PK in the path location table, or floor when
// the table is empty.
func MaxKey(q Querier, floor int64) (int64, error) {
	var maxKey sql.NullInt64
	if err := q.QueryRow("SELECT MAX(Z_PK) FROM ZPATHLOCATION").Scan(&maxKey); err != nil {
		return 0, errors.NewQueryFailed(err)
	}
	if !maxKey.Valid {
		return floor, nil
	}
	return maxKey.Int64, nil
}

// InsertLocations inserts rows in order using one prepared statement.
// It stops at the first failure and returns how many rows were inserted;
// those rows are not undone unless q is a transaction the caller rolls back.
func InsertLocations(q Querier, rows []Location) (int, error) {
	stmt, err := q.Prepare(insertLocationSQL)
	if err != nil {
		return 0, errors.NewPrepareFailed(err)
	}
	defer stmt.Close()

	for i, row := range rows {
		isRelative := 0
		if row.IsRelative {
			isRelative = 1
		}
		if _, err := stmt.Exec(row.EntityType, row.Key, row.RelativePath, isRelative, row.Volume); err != nil {
			return i, errors.NewInsertFailed(row.Key, row.RelativePath, i, err)
		}
	}

	return len(rows), nil
}

// ListLocations returns every path location row ordered by key.
func ListLocations(q Querier) ([]Location, error) {
	rows, err := q.Query(`
		SELECT Z_ENT, Z_PK, ZRELATIVEPATH, ZISRELATIVE, ZVOLUME
		FROM ZPATHLOCATION
		ORDER BY Z_PK
	`)
	if err != nil {
		return nil, errors.NewQueryFailed(err)
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		var (
			ent, isRelative sql.NullInt64
			key             int64
			relPath, volume sql.NullString
		)
		if err := rows.Scan(&ent, &key, &relPath, &isRelative, &volume); err != nil {
			return nil, errors.NewQueryFailed(err)
		}
		locations = append(locations, Location{
			EntityType:   ent.Int64,
			Key:          key,
			RelativePath: relPath.String,
			IsRelative:   isRelative.Int64 != 0,
			Volume:       volume.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryFailed(err)
	}

	return locations, nil
}

// RelativePaths returns the set of registered relative paths.
func RelativePaths(q Querier) (map[string]bool, error) {
	rows, err := q.Query("SELECT ZRELATIVEPATH FROM ZPATHLOCATION WHERE ZRELATIVEPATH IS NOT NULL")
	if err != nil {
		return nil, errors.NewQueryFailed(err)
	}
	defer rows.Close()

	paths := make(map[string]bool)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, errors.NewQueryFailed(err)
		}
		paths[p] = true
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryFailed(err)
	}
	return paths, nil
}
