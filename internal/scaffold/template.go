package scaffold

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hpungsan/c1assist/internal/errors"
	"github.com/hpungsan/c1assist/internal/log"
)

// LocateTemplate returns the first regular file named name found in dirs,
// searched in order. Directories and unreadable entries are skipped.
func LocateTemplate(name string, dirs []string) (string, error) {
	searched := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		searched = append(searched, candidate)

		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			log.Debug().Str("candidate", candidate).Msg("template not here")
			continue
		}
		log.Debug().Str("template", candidate).Msg("template found")
		return candidate, nil
	}
	return "", errors.NewTemplateNotFound(name, searched)
}

// CopyTemplate copies src to dst. The copy is written to a temp file in dst's
// directory and hard-linked into place, so dst either holds the full template
// or does not exist. An existing dst, including a dangling symlink, is never
// overwritten: the link fails with fs.ErrExist instead.
func CopyTemplate(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.NewCopyFailed(src, dst, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".c1assist-copy-*")
	if err != nil {
		return errors.NewCopyFailed(src, dst, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		return errors.NewCopyFailed(src, dst, fmt.Errorf("write: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return errors.NewCopyFailed(src, dst, fmt.Errorf("sync: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return errors.NewCopyFailed(src, dst, fmt.Errorf("close: %w", err))
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return errors.NewCopyFailed(src, dst, fmt.Errorf("chmod: %w", err))
	}
	if err := os.Link(tmpPath, dst); err != nil {
		if os.IsExist(err) {
			return errors.NewCopyFailed(src, dst, fs.ErrExist)
		}
		return errors.NewCopyFailed(src, dst, fmt.Errorf("link: %w", err))
	}
	return nil
}
