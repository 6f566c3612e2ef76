package ops

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/c1assist/internal/config"
	"github.com/hpungsan/c1assist/internal/db"
	"github.com/hpungsan/c1assist/internal/errors"
	"github.com/hpungsan/c1assist/internal/testutil"
)

// testConfig returns the default config with the template search path pointed
// at a fresh directory holding an empty main.db.
func testConfig(t *testing.T, rows ...testutil.Row) (*config.Config, string) {
	t.Helper()
	tmplDir := t.TempDir()
	testutil.NewTemplate(t, tmplDir, "main.db", rows...)

	cfg := config.DefaultConfig()
	cfg.TemplateSearchPaths = []string{tmplDir}
	return cfg, tmplDir
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestCreate_Wedding(t *testing.T) {
	cfg, tmplDir := testConfig(t)
	shoots := t.TempDir()

	out, err := Create(cfg, CreateInput{Name: "Wedding01", FolderCount: 3, Location: shoots})
	require.NoError(t, err)

	project := filepath.Join(shoots, "Wedding01")
	require.Equal(t, project, out.ProjectDir)
	require.Equal(t, filepath.Join(project, "Wedding01.cosessiondb"), out.DatabasePath)
	require.Equal(t, filepath.Join(tmplDir, "main.db"), out.Template)
	require.Equal(t, []string{"Capture/01", "Capture/02", "Capture/03"}, out.Folders)
	require.Equal(t, int64(6), out.StartKey)
	require.Equal(t, []int64{6, 7, 8}, out.Keys)

	require.Equal(t, []string{"Capture", "Output", "Selects", "Trash", "Wedding01.cosessiondb"}, listDir(t, project))
	require.Equal(t, []string{"01", "02", "03"}, listDir(t, filepath.Join(project, "Capture")))

	inspected, err := Inspect(cfg, InspectInput{DatabasePath: out.DatabasePath})
	require.NoError(t, err)
	require.Equal(t, 3, inspected.Count)
	require.Equal(t, int64(9), inspected.NextKey)
	require.Equal(t, db.Location{EntityType: 38, Key: 6, RelativePath: "Capture/01", IsRelative: true}, inspected.Locations[0])

	// The template itself is untouched.
	require.Zero(t, testutil.Count(t, out.Template))
}

func TestCreate_UsesConfiguredLayout(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.CaptureFolder = "Ingest"
	cfg.FixedFolders = []string{"Ingest", "Exports"}
	cfg.SessionExtension = "session"
	shoots := t.TempDir()

	out, err := Create(cfg, CreateInput{Name: "Studio", FolderCount: 2, Location: shoots})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(shoots, "Studio", "Studio.session"), out.DatabasePath)
	require.Equal(t, []string{"Exports", "Ingest", "Studio.session"}, listDir(t, out.ProjectDir))
	require.Equal(t, []string{"Ingest/01", "Ingest/02"}, out.Folders)
}

func TestCreate_InvalidInputTouchesNothing(t *testing.T) {
	cfg, _ := testConfig(t)
	shoots := t.TempDir()

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"empty name", CreateInput{Name: "", FolderCount: 3, Location: shoots}},
		{"slash in name", CreateInput{Name: "a/b", FolderCount: 3, Location: shoots}},
		{"zero folders", CreateInput{Name: "Shoot", FolderCount: 0, Location: shoots}},
		{"negative folders", CreateInput{Name: "Shoot", FolderCount: -1, Location: shoots}},
		{"no location", CreateInput{Name: "Shoot", FolderCount: 1, Location: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(cfg, tt.input)
			require.True(t, errors.Is(err, errors.ErrInvalidInput), "got %v", err)
			require.Empty(t, listDir(t, shoots))
		})
	}
}

func TestCreate_TemplateMissingLeavesDirectories(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TemplateSearchPaths = []string{t.TempDir()}
	shoots := t.TempDir()

	_, err := Create(cfg, CreateInput{Name: "Wedding01", FolderCount: 3, Location: shoots})
	require.True(t, errors.Is(err, errors.ErrTemplateNotFound), "got %v", err)

	project := filepath.Join(shoots, "Wedding01")
	require.Equal(t, []string{"Capture", "Output", "Selects", "Trash"}, listDir(t, project))
	require.Equal(t, []string{"01", "02", "03"}, listDir(t, filepath.Join(project, "Capture")))
}

func TestCreate_NotWritable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	cfg, _ := testConfig(t)
	shoots := t.TempDir()
	require.NoError(t, os.Chmod(shoots, 0555))
	t.Cleanup(func() { os.Chmod(shoots, 0755) })

	_, err := Create(cfg, CreateInput{Name: "Wedding01", FolderCount: 3, Location: shoots})
	require.True(t, errors.Is(err, errors.ErrNoWriteAccess), "got %v", err)
	require.Empty(t, listDir(t, shoots))
}

func TestCreate_LocationIsFile(t *testing.T) {
	cfg, _ := testConfig(t)
	parent := t.TempDir()
	file := filepath.Join(parent, "shoots.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	for _, location := range []string{file, filepath.Join(file, "nested")} {
		_, err := Create(cfg, CreateInput{Name: "Wedding01", FolderCount: 3, Location: location})
		require.True(t, errors.Is(err, errors.ErrNoWriteAccess), "location %s: got %v", location, err)
	}
	require.Equal(t, []string{"shoots.txt"}, listDir(t, parent))
}

func TestCreate_FolderCountOverLimit(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.MaxFolders = 10
	shoots := t.TempDir()

	_, err := Create(cfg, CreateInput{Name: "Wedding01", FolderCount: 11, Location: shoots})
	require.True(t, errors.Is(err, errors.ErrInvalidInput), "got %v", err)
	require.Empty(t, listDir(t, shoots))

	out, err := Create(cfg, CreateInput{Name: "Wedding01", FolderCount: 10, Location: shoots})
	require.NoError(t, err)
	require.Len(t, out.Keys, 10)
}

func TestCreate_SchemaMissingKeepsCopy(t *testing.T) {
	tmplDir := t.TempDir()
	testutil.NewDatabase(t, filepath.Join(tmplDir, "main.db"), "")
	cfg := config.DefaultConfig()
	cfg.TemplateSearchPaths = []string{tmplDir}
	shoots := t.TempDir()

	_, err := Create(cfg, CreateInput{Name: "Shoot", FolderCount: 1, Location: shoots})
	require.True(t, errors.Is(err, errors.ErrSchemaMissing), "got %v", err)

	_, statErr := os.Stat(filepath.Join(shoots, "Shoot", "Shoot.cosessiondb"))
	require.NoError(t, statErr)
}

func TestCreate_NilConfig(t *testing.T) {
	_, err := Create(nil, CreateInput{Name: "Shoot", FolderCount: 1, Location: t.TempDir()})
	require.True(t, errors.Is(err, errors.ErrInternal), "got %v", err)
}

func TestPatch_ExistingSession(t *testing.T) {
	cfg := config.DefaultConfig()
	path := testutil.NewTemplate(t, t.TempDir(), "Shoot.cosessiondb", testutil.Row{Key: 30, Path: "Output"})

	out, err := Patch(cfg, PatchInput{DatabasePath: path, FolderCount: 2})
	require.NoError(t, err)
	require.Equal(t, int64(31), out.StartKey)
	require.Equal(t, 2, out.Inserted)
	require.Equal(t, []int64{31, 32}, out.Keys)
	require.Equal(t, 3, testutil.Count(t, path))
}

func TestPatch_FolderCountOverLimit(t *testing.T) {
	cfg := config.DefaultConfig()
	path := testutil.NewTemplate(t, t.TempDir(), "Shoot.cosessiondb")

	_, err := Patch(cfg, PatchInput{DatabasePath: path, FolderCount: config.DefaultMaxFolders + 1})
	require.True(t, errors.Is(err, errors.ErrInvalidInput), "got %v", err)
	require.Zero(t, testutil.Count(t, path))
}

func TestPatch_ProjectDirectory(t *testing.T) {
	cfg := config.DefaultConfig()
	project := filepath.Join(t.TempDir(), "Wedding01")
	require.NoError(t, os.Mkdir(project, 0755))
	path := testutil.NewTemplate(t, project, "Wedding01.cosessiondb")

	out, err := Patch(cfg, PatchInput{DatabasePath: project, FolderCount: 1})
	require.NoError(t, err)
	require.Equal(t, path, out.DatabasePath)
	require.Equal(t, 1, testutil.Count(t, path))
}

func TestPatch_SkipExisting(t *testing.T) {
	cfg := config.DefaultConfig()
	path := testutil.NewTemplate(t, t.TempDir(), "Shoot.cosessiondb")

	_, err := Patch(cfg, PatchInput{DatabasePath: path, FolderCount: 2})
	require.NoError(t, err)

	out, err := Patch(cfg, PatchInput{DatabasePath: path, FolderCount: 4, SkipExisting: true})
	require.NoError(t, err)
	require.Equal(t, []string{"Capture/01", "Capture/02"}, out.Skipped)
	require.Equal(t, []int64{8, 9}, out.Keys)
	require.Equal(t, 4, testutil.Count(t, path))
}

func TestPatch_SkipExistingFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SkipExisting = true
	path := testutil.NewTemplate(t, t.TempDir(), "Shoot.cosessiondb", testutil.Row{Key: 6, Path: "Capture/01"})

	out, err := Patch(cfg, PatchInput{DatabasePath: path, FolderCount: 1})
	require.NoError(t, err)
	require.Zero(t, out.Inserted)
	require.Equal(t, 1, testutil.Count(t, path))
}

func TestPatch_Errors(t *testing.T) {
	cfg := config.DefaultConfig()

	_, err := Patch(cfg, PatchInput{DatabasePath: "", FolderCount: 1})
	require.True(t, errors.Is(err, errors.ErrInvalidInput), "got %v", err)

	_, err = Patch(cfg, PatchInput{DatabasePath: filepath.Join(t.TempDir(), "none.cosessiondb"), FolderCount: 1})
	require.True(t, errors.Is(err, errors.ErrDBConnectFailed), "got %v", err)

	// A directory without a session file named after it.
	_, err = Patch(cfg, PatchInput{DatabasePath: t.TempDir(), FolderCount: 1})
	require.True(t, errors.Is(err, errors.ErrInvalidInput), "got %v", err)
}

func TestInspect_EmptyTable(t *testing.T) {
	cfg := config.DefaultConfig()
	path := testutil.NewTemplate(t, t.TempDir(), "Shoot.cosessiondb")

	out, err := Inspect(cfg, InspectInput{DatabasePath: path})
	require.NoError(t, err)
	require.Zero(t, out.Count)
	require.NotNil(t, out.Locations)
	require.Equal(t, int64(6), out.NextKey)
}

func TestInspect_SchemaMissing(t *testing.T) {
	cfg := config.DefaultConfig()
	path := testutil.NewDatabase(t, filepath.Join(t.TempDir(), "bare.db"), "")

	_, err := Inspect(cfg, InspectInput{DatabasePath: path})
	require.True(t, errors.Is(err, errors.ErrSchemaMissing), "got %v", err)
}

func TestPlan_WritesNothing(t *testing.T) {
	cfg, tmplDir := testConfig(t, testutil.Row{Key: 40, Path: "Output"})
	shoots := t.TempDir()

	out, err := Plan(cfg, CreateInput{Name: "Wedding01", FolderCount: 2, Location: shoots})
	require.NoError(t, err)
	require.True(t, out.TemplateFound)
	require.Equal(t, filepath.Join(tmplDir, "main.db"), out.Template)
	require.Equal(t, []string{tmplDir}, out.SearchPath)
	require.Equal(t, int64(41), out.StartKey)
	require.Len(t, out.Rows, 2)
	require.Equal(t, "Capture/02", out.Rows[1].RelativePath)
	require.Equal(t, int64(42), out.Rows[1].Key)
	require.Equal(t, filepath.Join(shoots, "Wedding01", "Wedding01.cosessiondb"), out.Tree.DatabasePath)

	require.Empty(t, listDir(t, shoots))
}

func TestPlan_TemplateMissing(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TemplateSearchPaths = []string{t.TempDir()}

	out, err := Plan(cfg, CreateInput{Name: "Shoot", FolderCount: 3, Location: t.TempDir()})
	require.NoError(t, err)
	require.False(t, out.TemplateFound)
	require.Equal(t, int64(6), out.StartKey)
	require.Equal(t, []int64{6, 7, 8}, keys(out.Rows))
}

func TestPlan_InvalidInput(t *testing.T) {
	cfg := config.DefaultConfig()
	_, err := Plan(cfg, CreateInput{Name: "..", FolderCount: 3, Location: t.TempDir()})
	require.True(t, errors.Is(err, errors.ErrInvalidInput), "got %v", err)
}

func TestPlan_FolderCountOverLimit(t *testing.T) {
	cfg, _ := testConfig(t)
	_, err := Plan(cfg, CreateInput{Name: "Wedding01", FolderCount: 1_000_000_000, Location: t.TempDir()})
	require.True(t, errors.Is(err, errors.ErrInvalidInput), "got %v", err)

	cfg.MaxFolders = 2
	_, err = Plan(cfg, CreateInput{Name: "Wedding01", FolderCount: 3, Location: t.TempDir()})
	require.True(t, errors.Is(err, errors.ErrInvalidInput), "got %v", err)
}

func TestTemplateDirs_ExpandsTokens(t *testing.T) {
	orig := searchEnv
	t.Cleanup(func() { searchEnv = orig })
	searchEnv = func() config.SearchEnv {
		return config.SearchEnv{ExeDir: "/opt/c1assist/bin", Cwd: "/work"}
	}

	cfg := config.DefaultConfig()
	cfg.TemplateSearchPaths = []string{"$RESOURCES_DIR", "$EXE_DIR", "$CWD/templates", "$EXE_DIR"}
	require.Equal(t, []string{"/opt/c1assist/bin", "/work/templates"}, templateDirs(cfg))
}
