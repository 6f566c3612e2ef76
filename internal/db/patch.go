package db

import (
	"database/sql"

	"github.com/hpungsan/c1assist/internal/errors"
	"github.com/hpungsan/c1assist/internal/log"
	"github.com/hpungsan/c1assist/internal/scaffold"
)

// PatchOptions controls how numbered folders are registered.
type PatchOptions struct {
	FolderCount   int
	MaxFolders    int // zero means config.DefaultMaxFolders
	EntityType    int64
	KeyFloor      int64
	CaptureFolder string

	// SkipExisting leaves out folders whose relative path is already in the
	// table. Keys stay contiguous over the rows actually inserted.
	SkipExisting bool

	// Atomic inserts all rows in one transaction: a failure leaves no rows.
	// Without it, rows inserted before a failure stay committed.
	Atomic bool
}

// PatchResult describes the rows written by Patch.
type PatchResult struct {
	StartKey int64      `json:"start_key"`
	Rows     []Location `json:"rows"`
	Skipped  []string   `json:"skipped,omitempty"`
}

// Patch opens the session database at path and appends one path location
// row per numbered folder, with keys continuing after the current maximum.
func Patch(path string, opts PatchOptions) (*PatchResult, error) {
	if err := scaffold.ValidateFolderCount(opts.FolderCount, opts.MaxFolders); err != nil {
		return nil, err
	}
	if opts.CaptureFolder == "" {
		return nil, errors.NewInvalidInput("capture folder is required")
	}

	database, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	exists, err := TableExists(database, PathLocationTable)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NewSchemaMissing(PathLocationTable)
	}

	var (
		q  Querier = database
		tx *sql.Tx
	)
	if opts.Atomic {
		if tx, err = database.Begin(); err != nil {
			return nil, errors.NewQueryFailed(err)
		}
		// No-op after a successful Commit.
		defer tx.Rollback()
		q = tx
	}

	maxKey, err := MaxKey(q, opts.KeyFloor)
	if err != nil {
		return nil, err
	}

	var existing map[string]bool
	if opts.SkipExisting {
		if existing, err = RelativePaths(q); err != nil {
			return nil, err
		}
	}

	result := &PatchResult{StartKey: maxKey + 1}
	result.Rows, result.Skipped = PlanRows(result.StartKey, opts, existing)

	log.Debug().
		Str("database", path).
		Int64("start_key", result.StartKey).
		Int("rows", len(result.Rows)).
		Msg("inserting path locations")

	if _, err := InsertLocations(q, result.Rows); err != nil {
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			return nil, errors.NewQueryFailed(err)
		}
	}

	return result, nil
}

// PlanRows computes the rows for folders 1..FolderCount in increasing order.
// Paths present in existing are skipped and returned separately.
func PlanRows(startKey int64, opts PatchOptions, existing map[string]bool) ([]Location, []string) {
	rows := []Location{}
	var skipped []string

	key := startKey
	for i := 1; i <= opts.FolderCount; i++ {
		relPath := scaffold.CapturePath(opts.CaptureFolder, i)
		if existing[relPath] {
			skipped = append(skipped, relPath)
			continue
		}
		rows = append(rows, Location{
			EntityType:   opts.EntityType,
			Key:          key,
			RelativePath: relPath,
			IsRelative:   true,
			Volume:       "",
		})
		key++
	}

	return rows, skipped
}
