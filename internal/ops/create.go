package ops

import (
	"github.com/hpungsan/c1assist/internal/config"
	"github.com/hpungsan/c1assist/internal/db"
	"github.com/hpungsan/c1assist/internal/log"
	"github.com/hpungsan/c1assist/internal/scaffold"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Name        string
	FolderCount int
	Location    string // existing, writable directory
}

// CreateOutput contains the result of the Create operation.
type CreateOutput struct {
	ProjectDir   string        `json:"project_dir"`
	DatabasePath string        `json:"database_path"`
	Template     string        `json:"template"`
	Folders      []string      `json:"folders"`
	StartKey     int64         `json:"start_key"`
	Keys         []int64       `json:"keys"`
	Rows         []db.Location `json:"-"`
}

// Create builds the project tree, copies the session template into it, and
// registers every numbered capture folder in the copied database.
// A failure at any step stops the operation; whatever was already created
// stays on disk.
func Create(cfg *config.Config, input CreateInput) (*CreateOutput, error) {
	if err := requireConfig(cfg); err != nil {
		return nil, err
	}

	built, err := scaffold.Build(buildInput(cfg, input))
	if err != nil {
		log.Error().Err(err).Str("name", input.Name).Str("location", input.Location).Msg("scaffold failed")
		return nil, err
	}

	patched, err := db.Patch(built.Tree.DatabasePath, patchOptions(cfg, input.FolderCount, false))
	if err != nil {
		log.Error().Err(err).Str("database", built.Tree.DatabasePath).Msg("session patch failed")
		return nil, err
	}

	log.Info().
		Str("project", built.Tree.ProjectDir).
		Int("folders", input.FolderCount).
		Int64("start_key", patched.StartKey).
		Msg("project created")

	return &CreateOutput{
		ProjectDir:   built.Tree.ProjectDir,
		DatabasePath: built.Tree.DatabasePath,
		Template:     built.Template,
		Folders:      built.Tree.CapturePaths,
		StartKey:     patched.StartKey,
		Keys:         keys(patched.Rows),
		Rows:         patched.Rows,
	}, nil
}
