package ops

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/c1assist/internal/config"
	"github.com/hpungsan/c1assist/internal/errors"
)

// ResolveSessionPath turns user input into the path of a session database.
// A project directory resolves to the session file named after it, so both
// "/Shoots/Wedding01" and "/Shoots/Wedding01/Wedding01.cosessiondb" work.
// Anything else is returned cleaned and left for the database layer to open.
func ResolveSessionPath(path string, cfg *config.Config) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.NewInvalidInput("database path is required")
	}
	cleaned := filepath.Clean(path)

	info, err := os.Stat(cleaned)
	if err != nil || !info.IsDir() {
		return cleaned, nil
	}

	ext := strings.TrimPrefix(cfg.SessionExtension, ".")
	candidate := filepath.Join(cleaned, filepath.Base(cleaned)+"."+ext)
	if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
		return candidate, nil
	}
	return "", errors.NewInvalidInput("no session database found in directory " + cleaned)
}
