package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Search path tokens expanded by ResolveSearchPaths.
const (
	TokenExeDir       = "EXE_DIR"
	TokenResourcesDir = "RESOURCES_DIR"
	TokenCwd          = "CWD"
	TokenHome         = "HOME"
)

// Config holds application configuration.
type Config struct {
	// TemplateName is the file name of the template database to look for.
	TemplateName string `json:"template_name,omitempty"`

	// TemplateSearchPaths is the ordered list of directories searched for the
	// template. The first directory containing TemplateName wins.
	// Entries may use $EXE_DIR, $RESOURCES_DIR, $CWD and $HOME.
	TemplateSearchPaths []string `json:"template_search_paths,omitempty"`

	// SessionExtension is the extension given to the copied session file.
	SessionExtension string `json:"session_extension,omitempty"`

	// CaptureFolder is the fixed folder that receives the numbered folders.
	CaptureFolder string `json:"capture_folder,omitempty"`

	// FixedFolders are created directly under the project root, in order.
	// CaptureFolder must be one of them.
	FixedFolders []string `json:"fixed_folders,omitempty"`

	// EntityType is the Z_ENT value written on every path location row.
	EntityType int `json:"entity_type,omitempty"`

	// MaxFolders caps the numbered folder count of one request.
	MaxFolders int `json:"max_folders,omitempty"`

	// KeyFloor is used as the current maximum key when the table is empty.
	// nil means the default floor.
	KeyFloor *int64 `json:"key_floor,omitempty"`

	// SkipExisting skips folders whose relative path is already registered.
	SkipExisting bool `json:"skip_existing,omitempty"`

	// AtomicPatch wraps all inserts of one patch in a single transaction.
	AtomicPatch bool `json:"atomic_patch,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultKeyFloor is the maximum key assumed for an empty path location table.
const DefaultKeyFloor int64 = 5

// DefaultMaxFolders is the largest folder count accepted by default.
const DefaultMaxFolders = 999

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	floor := DefaultKeyFloor
	return &Config{
		TemplateName: "main.db",
		TemplateSearchPaths: []string{
			"$" + TokenExeDir,
			"$" + TokenResourcesDir,
			"$" + TokenCwd,
		},
		SessionExtension: "cosessiondb",
		CaptureFolder:    "Capture",
		FixedFolders:     []string{"Capture", "Output", "Selects", "Trash"},
		EntityType:       38,
		MaxFolders:       DefaultMaxFolders,
		KeyFloor:         &floor,
		LogLevel:         "info",
	}
}

// Floor returns the configured key floor or the default.
func (c *Config) Floor() int64 {
	if c == nil || c.KeyFloor == nil {
		return DefaultKeyFloor
	}
	return *c.KeyFloor
}

// FolderLimit returns the configured folder cap or the default.
func (c *Config) FolderLimit() int {
	if c == nil || c.MaxFolders <= 0 {
		return DefaultMaxFolders
	}
	return c.MaxFolders
}

// DefaultBaseDir returns ~/.c1assist.
func DefaultBaseDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".c1assist"), nil
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.c1assist.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.c1assist) and local (.c1assist) directories.
// Local config is found by walking upward from startDir to find the nearest .c1assist/config.json.
// Local config takes precedence for scalar values and non-empty lists.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .c1assist/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	if startDir == "" {
		return ""
	}
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".c1assist", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars. Ordered lists (search paths,
// fixed folders) are replaced wholesale when the overlay sets them, since
// their order is meaningful. DisabledTools is merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.TemplateName = pickString(overlay.TemplateName, base.TemplateName)
	result.SessionExtension = strings.TrimPrefix(pickString(overlay.SessionExtension, base.SessionExtension), ".")
	result.CaptureFolder = pickString(overlay.CaptureFolder, base.CaptureFolder)
	result.LogLevel = pickString(overlay.LogLevel, base.LogLevel)

	result.EntityType = overlay.EntityType
	if result.EntityType == 0 {
		result.EntityType = base.EntityType
	}

	result.MaxFolders = overlay.MaxFolders
	if result.MaxFolders <= 0 {
		result.MaxFolders = base.MaxFolders
	}

	result.KeyFloor = overlay.KeyFloor
	if result.KeyFloor == nil {
		result.KeyFloor = base.KeyFloor
	}

	// Booleans: overlay wins if true, else base
	result.SkipExisting = base.SkipExisting || overlay.SkipExisting
	result.AtomicPatch = base.AtomicPatch || overlay.AtomicPatch

	result.TemplateSearchPaths = pickList(overlay.TemplateSearchPaths, base.TemplateSearchPaths)
	result.FixedFolders = pickList(overlay.FixedFolders, base.FixedFolders)
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func pickString(overlay, base string) string {
	if s := strings.TrimSpace(overlay); s != "" {
		return s
	}
	return base
}

func pickList(overlay, base []string) []string {
	cleaned := mergeStringSlice(overlay, nil)
	if len(cleaned) > 0 {
		return cleaned
	}
	return append([]string(nil), base...)
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
