package ops

import (
	"github.com/hpungsan/c1assist/internal/config"
	"github.com/hpungsan/c1assist/internal/db"
	"github.com/hpungsan/c1assist/internal/errors"
)

// InspectInput contains parameters for the Inspect operation.
type InspectInput struct {
	DatabasePath string
}

// InspectOutput contains the result of the Inspect operation.
type InspectOutput struct {
	DatabasePath string        `json:"database_path"`
	Count        int           `json:"count"`
	NextKey      int64         `json:"next_key"`
	Locations    []db.Location `json:"locations"`
}

// Inspect lists the path locations registered in a session database.
func Inspect(cfg *config.Config, input InspectInput) (*InspectOutput, error) {
	if err := requireConfig(cfg); err != nil {
		return nil, err
	}
	path, err := ResolveSessionPath(input.DatabasePath, cfg)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	exists, err := db.TableExists(database, db.PathLocationTable)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NewSchemaMissing(db.PathLocationTable)
	}

	locations, err := db.ListLocations(database)
	if err != nil {
		return nil, err
	}
	maxKey, err := db.MaxKey(database, cfg.Floor())
	if err != nil {
		return nil, err
	}

	if locations == nil {
		locations = []db.Location{}
	}
	return &InspectOutput{
		DatabasePath: path,
		Count:        len(locations),
		NextKey:      maxKey + 1,
		Locations:    locations,
	}, nil
}
