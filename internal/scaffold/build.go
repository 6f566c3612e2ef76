package scaffold

import (
	"os"

	"github.com/hpungsan/c1assist/internal/errors"
	"github.com/hpungsan/c1assist/internal/log"
)

// BuildInput contains parameters for Build.
type BuildInput struct {
	Name         string
	FolderCount  int
	MaxFolders   int // zero means config.DefaultMaxFolders
	Location     string
	Layout       Layout
	TemplateName string
	TemplateDirs []string // resolved, ordered search directories
}

// BuildOutput describes what Build created.
type BuildOutput struct {
	Tree     *Tree
	Template string // the template file that was copied
}

// Validate checks the inputs that do not depend on the filesystem.
func (in BuildInput) Validate() error {
	if err := ValidateName(in.Name); err != nil {
		return err
	}
	if err := ValidateFolderCount(in.FolderCount, in.MaxFolders); err != nil {
		return err
	}
	if in.Location == "" {
		return errors.NewInvalidInput("location is required")
	}
	if in.TemplateName == "" {
		return errors.NewInvalidInput("template name is required")
	}
	return in.Layout.Validate()
}

// Build creates the project tree under Location and copies the template
// database into it. Every step is terminal on failure and nothing already
// created is removed.
func Build(in BuildInput) (*BuildOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if err := ProbeWritable(in.Location); err != nil {
		return nil, err
	}

	tree := NewTree(in.Location, in.Name, in.FolderCount, in.Layout)

	for _, dir := range tree.Dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.NewDirectoryFailed(dir, err)
		}
		log.Debug().Str("dir", dir).Msg("directory created")
	}

	src, err := LocateTemplate(in.TemplateName, in.TemplateDirs)
	if err != nil {
		return nil, err
	}

	if err := CopyTemplate(src, tree.DatabasePath); err != nil {
		return nil, err
	}
	log.Debug().Str("from", src).Str("to", tree.DatabasePath).Msg("template copied")

	return &BuildOutput{
		Tree:     tree,
		Template: src,
	}, nil
}
