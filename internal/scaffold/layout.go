// Package scaffold creates the on-disk project tree and the per-project
// session database copy.
package scaffold

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/hpungsan/c1assist/internal/config"
	"github.com/hpungsan/c1assist/internal/errors"
)

// Layout describes the fixed part of a project tree.
type Layout struct {
	FixedFolders     []string // created under the project root, in order
	CaptureFolder    string   // member of FixedFolders receiving numbered folders
	SessionExtension string   // without leading dot
}

// DefaultLayout returns the Capture/Output/Selects/Trash layout.
func DefaultLayout() Layout {
	return LayoutFromConfig(config.DefaultConfig())
}

// LayoutFromConfig builds a Layout from configuration.
func LayoutFromConfig(cfg *config.Config) Layout {
	return Layout{
		FixedFolders:     append([]string(nil), cfg.FixedFolders...),
		CaptureFolder:    cfg.CaptureFolder,
		SessionExtension: strings.TrimPrefix(cfg.SessionExtension, "."),
	}
}

// Validate checks that every folder is a single path component and that the
// capture folder is one of the fixed folders.
func (l Layout) Validate() error {
	if len(l.FixedFolders) == 0 {
		return errors.NewInvalidInput("layout has no fixed folders")
	}
	hasCapture := false
	for _, f := range l.FixedFolders {
		if err := ValidateName(f); err != nil {
			return errors.NewInvalidInput(fmt.Sprintf("invalid fixed folder %q", f))
		}
		if f == l.CaptureFolder {
			hasCapture = true
		}
	}
	if !hasCapture {
		return errors.NewInvalidInput(fmt.Sprintf("capture folder %q is not a fixed folder", l.CaptureFolder))
	}
	if l.SessionExtension == "" || strings.ContainsAny(l.SessionExtension, `/\`) {
		return errors.NewInvalidInput(fmt.Sprintf("invalid session extension %q", l.SessionExtension))
	}
	return nil
}

// ValidateName rejects empty names, names containing '/' or '\' on any
// platform, and the special entries "." and "..".
func ValidateName(name string) error {
	if name == "" {
		return errors.NewInvalidInput("project name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.NewInvalidInput("project name must not contain a path separator")
	}
	if name == "." || name == ".." {
		return errors.NewInvalidInput("project name must not be . or ..")
	}
	if strings.ContainsRune(name, 0) {
		return errors.NewInvalidInput("project name must not contain NUL")
	}
	return nil
}

// ValidateFolderCount rejects counts below one or above limit.
// A limit of zero or less means config.DefaultMaxFolders.
func ValidateFolderCount(n, limit int) error {
	if limit <= 0 {
		limit = config.DefaultMaxFolders
	}
	if n < 1 {
		return errors.NewInvalidInput(fmt.Sprintf("folder count must be at least 1, got %d", n))
	}
	if n > limit {
		return errors.NewInvalidInput(fmt.Sprintf("folder count must be at most %d, got %d", limit, n))
	}
	return nil
}

// FolderName returns the numbered folder name for index i (1-based).
// Padding is fixed at two digits: 7 → "07", 100 → "100".
func FolderName(i int) string {
	return fmt.Sprintf("%02d", i)
}

// CapturePath returns the relative path stored in the database for index i,
// always '/'-separated regardless of platform.
func CapturePath(captureFolder string, i int) string {
	return path.Join(captureFolder, FolderName(i))
}

// Tree is the resolved set of paths for one project.
type Tree struct {
	ProjectDir   string   `json:"project_dir"`
	Dirs         []string `json:"dirs"`          // every directory, in creation order
	CapturePaths []string `json:"capture_paths"` // relative, '/'-separated
	DatabasePath string   `json:"database_path"`
}

// NewTree resolves the tree for a project without touching the filesystem.
func NewTree(location, name string, folderCount int, layout Layout) *Tree {
	projectDir := filepath.Join(location, name)
	t := &Tree{
		ProjectDir:   projectDir,
		Dirs:         []string{projectDir},
		CapturePaths: []string{},
		DatabasePath: filepath.Join(projectDir, name+"."+layout.SessionExtension),
	}

	for _, fixed := range layout.FixedFolders {
		fixedDir := filepath.Join(projectDir, fixed)
		t.Dirs = append(t.Dirs, fixedDir)
		if fixed != layout.CaptureFolder {
			continue
		}
		for i := 1; i <= folderCount; i++ {
			t.Dirs = append(t.Dirs, filepath.Join(fixedDir, FolderName(i)))
			t.CapturePaths = append(t.CapturePaths, CapturePath(fixed, i))
		}
	}

	return t
}
