package config

import (
	"os"
	"path/filepath"
)

// SearchEnv holds the runtime values substituted into search path entries.
type SearchEnv struct {
	ExeDir       string
	ResourcesDir string
	Cwd          string
	Home         string
}

// CurrentSearchEnv captures the running program's directories.
// Values that cannot be determined are left empty.
func CurrentSearchEnv() SearchEnv {
	var env SearchEnv
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		env.ExeDir = filepath.Dir(exe)
		// Inside an app bundle the binary sits in Contents/MacOS.
		env.ResourcesDir = filepath.Join(env.ExeDir, "..", "Resources")
	}
	if cwd, err := os.Getwd(); err == nil {
		env.Cwd = cwd
	}
	if home, err := os.UserHomeDir(); err == nil {
		env.Home = home
	}
	return env
}

func (e SearchEnv) lookup(token string) (string, bool) {
	switch token {
	case TokenExeDir:
		return e.ExeDir, e.ExeDir != ""
	case TokenResourcesDir:
		return e.ResourcesDir, e.ResourcesDir != ""
	case TokenCwd:
		return e.Cwd, e.Cwd != ""
	case TokenHome:
		return e.Home, e.Home != ""
	}
	return "", false
}

// ResolveSearchPaths expands tokens in each entry and returns cleaned absolute
// directories in the original order. Entries referencing an unknown or
// unavailable token, or resolving to a relative path, are dropped.
// Duplicates keep their first position.
func ResolveSearchPaths(entries []string, env SearchEnv) []string {
	seen := make(map[string]bool, len(entries))
	result := make([]string, 0, len(entries))

	for _, entry := range entries {
		ok := true
		expanded := os.Expand(entry, func(token string) string {
			v, found := env.lookup(token)
			if !found {
				ok = false
			}
			return v
		})
		if !ok || expanded == "" || !filepath.IsAbs(expanded) {
			continue
		}
		dir := filepath.Clean(expanded)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		result = append(result, dir)
	}

	return result
}
