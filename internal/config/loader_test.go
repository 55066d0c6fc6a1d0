package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/crank-build/crank/internal/task"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePipeline = `pipeline: agent-server
verbose: true
targets:
  - name: fmt
    desc: format the tree
    commands:
      - exec: uv
        args: [run, ruff, format, "."]
  - name: lint
    desc: check the tree
    deps: [fmt]
    commands:
      - exec: uv
        args: [run, ruff, check, "."]
        dir: src
        env:
          RUFF_CACHE_DIR: .cache/ruff
  - name: verify
    deps: [fmt, lint]
`

func writePipeline(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.Pipeline)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.NoColor)
	assert.Empty(t, cfg.Targets)

	reg, err := cfg.BuildRegistry()
	require.NoError(t, err)
	assert.True(t, reg.Has("ci-check"), "no targets declared means the built-in catalog")
}

func TestLoad_PipelineFile(t *testing.T) {
	cfg, err := Load(writePipeline(t, samplePipeline), nil)
	require.NoError(t, err)

	assert.Equal(t, "agent-server", cfg.Pipeline)
	assert.True(t, cfg.Verbose)
	require.Len(t, cfg.Targets, 3)

	reg, err := cfg.BuildRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{"fmt", "lint", "verify"}, reg.Names())

	lint, err := reg.Lookup("lint")
	require.NoError(t, err)
	assert.Equal(t, []string{"fmt"}, lint.Deps)
	require.Len(t, lint.Commands, 1)
	assert.Equal(t, "uv run ruff check .", lint.Commands[0].String())
	assert.Equal(t, "src", lint.Commands[0].Dir)
	assert.Equal(t, map[string]string{"RUFF_CACHE_DIR": ".cache/ruff"}, lint.Commands[0].Env)

	verify, err := reg.Lookup("verify")
	require.NoError(t, err)
	assert.Empty(t, verify.Commands, "aggregator targets need no commands")
	assert.True(t, verify.Phony)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CRANK_NO_COLOR", "true")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.True(t, cfg.NoColor)
}

func TestLoad_FlagOverridesEnvAndFile(t *testing.T) {
	t.Setenv("CRANK_VERBOSE", "false")
	path := writePipeline(t, "verbose: false\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.BoolP("verbose", "v", false, "")
	fs.Bool("no-color", false, "")
	require.NoError(t, fs.Set("verbose", "true"))
	require.NoError(t, fs.Set("no-color", "true"))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose, "flags take precedence over env and file")
	assert.True(t, cfg.NoColor, "dashed flag names map to underscore keys")
}

func TestLoad_UnchangedFlagsIgnored(t *testing.T) {
	path := writePipeline(t, "verbose: true\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.BoolP("verbose", "v", false, "")

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose, "an unset flag must not override the file")
}

func TestBuildRegistry_DuplicateTarget(t *testing.T) {
	cfg := &Config{Targets: []TargetSpec{{Name: "lint"}, {Name: "lint"}}}

	_, err := cfg.BuildRegistry()
	var dup *task.DuplicateTargetError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "lint", dup.Name)
}

func TestBuildRegistry_MissingExec(t *testing.T) {
	cfg := &Config{Targets: []TargetSpec{
		{Name: "lint", Commands: []CommandSpec{{Args: []string{"check"}}}},
	}}

	_, err := cfg.BuildRegistry()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exec is required")
}

func TestBuildRegistry_InvalidName(t *testing.T) {
	cfg := &Config{Targets: []TargetSpec{{Name: "bad name"}}}

	_, err := cfg.BuildRegistry()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid target name")
}

func TestSpecsFromRegistry_RoundTrip(t *testing.T) {
	specs := SpecsFromRegistry(task.Builtin())
	cfg := &Config{Targets: specs}

	reg, err := cfg.BuildRegistry()
	require.NoError(t, err)
	assert.Equal(t, task.Builtin().Names(), reg.Names())

	ci, err := reg.Lookup("ci-check")
	require.NoError(t, err)
	assert.Equal(t, []string{"format", "lint", "type-check", "security", "test"}, ci.Deps)

	dockerTest, err := reg.Lookup("docker-test")
	require.NoError(t, err)
	assert.NotEmpty(t, dockerTest.Cleanup)
}

func TestFindFile(t *testing.T) {
	assert.Equal(t, "explicit.yaml", FindFile("explicit.yaml"))
	assert.Empty(t, FindFile(""), "no pipeline file in the package directory")
}
