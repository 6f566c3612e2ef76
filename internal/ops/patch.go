package ops

import (
	"github.com/hpungsan/c1assist/internal/config"
	"github.com/hpungsan/c1assist/internal/db"
	"github.com/hpungsan/c1assist/internal/log"
)

// PatchInput contains parameters for the Patch operation.
type PatchInput struct {
	DatabasePath string
	FolderCount  int
	SkipExisting bool // also enabled by config skip_existing
}

// PatchOutput contains the result of the Patch operation.
type PatchOutput struct {
	DatabasePath string        `json:"database_path"`
	StartKey     int64         `json:"start_key"`
	Inserted     int           `json:"inserted"`
	Keys         []int64       `json:"keys"`
	Skipped      []string      `json:"skipped,omitempty"`
	Rows         []db.Location `json:"rows"`
}

// Patch registers numbered capture folders in an existing session database.
// Without SkipExisting, running it twice registers every folder twice under
// new keys.
func Patch(cfg *config.Config, input PatchInput) (*PatchOutput, error) {
	if err := requireConfig(cfg); err != nil {
		return nil, err
	}
	path, err := ResolveSessionPath(input.DatabasePath, cfg)
	if err != nil {
		return nil, err
	}

	result, err := db.Patch(path, patchOptions(cfg, input.FolderCount, input.SkipExisting))
	if err != nil {
		log.Error().Err(err).Str("database", path).Msg("session patch failed")
		return nil, err
	}

	log.Info().
		Str("database", path).
		Int("inserted", len(result.Rows)).
		Int("skipped", len(result.Skipped)).
		Msg("session patched")

	return &PatchOutput{
		DatabasePath: path,
		StartKey:     result.StartKey,
		Inserted:     len(result.Rows),
		Keys:         keys(result.Rows),
		Skipped:      result.Skipped,
		Rows:         result.Rows,
	}, nil
}
