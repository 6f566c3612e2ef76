package ops

import (
	"fmt"
	"strings"

	"github.com/hpungsan/c1assist/internal/config"
	"github.com/hpungsan/c1assist/internal/db"
	"github.com/hpungsan/c1assist/internal/errors"
	"github.com/hpungsan/c1assist/internal/scaffold"
)

// searchEnv is swapped in tests.
var searchEnv = config.CurrentSearchEnv

// templateDirs resolves the configured template search path.
func templateDirs(cfg *config.Config) []string {
	return config.ResolveSearchPaths(cfg.TemplateSearchPaths, searchEnv())
}

// buildInput maps a create request onto the scaffold builder.
func buildInput(cfg *config.Config, input CreateInput) scaffold.BuildInput {
	return scaffold.BuildInput{
		Name:         input.Name,
		FolderCount:  input.FolderCount,
		MaxFolders:   cfg.FolderLimit(),
		Location:     strings.TrimSpace(input.Location),
		Layout:       scaffold.LayoutFromConfig(cfg),
		TemplateName: cfg.TemplateName,
		TemplateDirs: templateDirs(cfg),
	}
}

// patchOptions maps configuration onto the database patcher.
func patchOptions(cfg *config.Config, folderCount int, skipExisting bool) db.PatchOptions {
	return db.PatchOptions{
		FolderCount:   folderCount,
		MaxFolders:    cfg.FolderLimit(),
		EntityType:    int64(cfg.EntityType),
		KeyFloor:      cfg.Floor(),
		CaptureFolder: cfg.CaptureFolder,
		SkipExisting:  cfg.SkipExisting || skipExisting,
		Atomic:        cfg.AtomicPatch,
	}
}

// requireConfig guards the operations against a nil config.
func requireConfig(cfg *config.Config) error {
	if cfg == nil {
		return errors.NewInternal(fmt.Errorf("config is required"))
	}
	return nil
}

// keys extracts the primary keys of rows, in order.
func keys(rows []db.Location) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.Key
	}
	return out
}
