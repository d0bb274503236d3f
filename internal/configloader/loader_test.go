package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docscan/pkg/config"
)

// projectDir creates a temp directory marked as a VCS root so the upward
// search never leaves it.
func projectDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(projectDir(t)))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, "src", result.Config.Check.Dir)
	assert.Equal(t, 80, result.Config.Check.MaxWidth)
	assert.Equal(t, "#", result.Config.Fix.Marker)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".docscan.yml"), `
check:
  max_width: 100
recursive: true
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, 100, result.Config.Check.MaxWidth)
	assert.Equal(t, "src", result.Config.Check.Dir, "unset keys keep defaults")
	assert.True(t, result.Config.IsRecursive())
	assert.Len(t, result.LoadedFrom, 1)
	assert.Equal(t, []Layer{LayerProject}, result.Layers)
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, "docscan.yaml"), "check:\n  dir: pages\n")
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)
	assert.Equal(t, "pages", result.Config.Check.Dir)
}

func TestLoad_ExplicitConfigReplacesProject(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".docscan.yml"), "check:\n  dir: project\n")
	customPath := filepath.Join(dir, "custom.yml")
	writeFile(t, customPath, "fix:\n  dir: explicit\n")

	opts := isolated(dir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "explicit", result.Config.Fix.Dir)
	assert.Equal(t, "src", result.Config.Check.Dir)
	assert.Equal(t, []string{customPath}, result.LoadedFrom)
	assert.Equal(t, []Layer{LayerExplicit}, result.Layers)
}

func TestFindProjectConfig_StopsAtRepositoryRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".docscan.yml"), "check:\n  dir: outside\n")
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	sub := filepath.Join(repo, "docs")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	path, err := FindProjectConfig(context.Background(), sub)
	require.NoError(t, err)
	assert.Empty(t, path, "config outside the repository is ignored")

	path, err = FindProjectConfig(context.Background(), outer)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outer, ".docscan.yml"), path)
}

func TestLoad_UserConfigBelowProject(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	writeFile(t, filepath.Join(configHome, "docscan", "config.yaml"), "check:\n  max_width: 90\n  dir: user\n")

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".docscan.yml"), "check:\n  dir: project\n")

	opts := isolated(dir)
	opts.IgnoreUserConfig = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 90, result.Config.Check.MaxWidth)
	assert.Equal(t, "project", result.Config.Check.Dir)
	assert.Equal(t, []Layer{LayerUser, LayerProject}, result.Layers)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".docscan.yml"), "recursive: true\ncheck:\n  max_width: 100\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Check:     config.CheckConfig{MaxWidth: 72},
		Recursive: config.Bool(false),
		Format:    config.FormatJSON,
		DryRun:    true,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 72, result.Config.Check.MaxWidth)
	assert.False(t, result.Config.IsRecursive(), "explicit false overrides file")
	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.True(t, result.Config.DryRun)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".docscan.yml"), "check:\n  max_width: 100\n")
	t.Setenv("DOCSCAN_MAX_WIDTH", "120")
	t.Setenv("DOCSCAN_BACKUPS_ENABLED", "true")

	opts := isolated(dir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 120, result.Config.Check.MaxWidth)
	assert.True(t, result.Config.BackupsEnabled())
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "negative width", body: "check:\n  max_width: -1\n", field: "check.max_width"},
		{name: "unknown width mode", body: "check:\n  width_mode: bytes\n", field: "check.width_mode"},
		{name: "same markers", body: "fix:\n  marker: \"#\"\n  replacement: \"#\"\n", field: "fix.replacement"},
		{name: "marker extends replacement", body: "fix:\n  marker: \"##\"\n  replacement: \"#\"\n", field: "fix.replacement"},
		{name: "bad glob", body: "ignore: [\"[\"]\n", field: "ignore[0]"},
		{name: "empty extensions", body: "extensions: []\n", field: "extensions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := projectDir(t)
			path := filepath.Join(dir, ".docscan.yml")
			writeFile(t, path, tt.body)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %T", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoad_UnknownKeyNamesFile(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	path := filepath.Join(dir, ".docscan.yml")
	writeFile(t, path, "max_widht: 10\n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	opts := isolated(dir)
	opts.ExplicitPath = filepath.Join(dir, "nope.yml")

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(projectDir(t)))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_WarnsOnDotlessExtension(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".docscan.yml"), "extensions: [md]\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "extensions[0]")
}
