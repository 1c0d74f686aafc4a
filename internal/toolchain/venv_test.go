package toolchain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cellworks/battctl/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestVenvCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates environment exactly once", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		cfg := testConfig(t)
		runner := &fakeRunner{available: map[string]string{"uv": "/usr/bin/uv"}}
		// The fake stands in for the real tool by creating the directory.
		runner.onRun = func(_ string, args []string) {
			require.NoError(t, os.MkdirAll(args[len(args)-1], 0o750))
		}
		v := NewVenv(root, cfg, runner, discardLogger())

		created, err := v.Create(t.Context())
		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, v.Exists())

		created, err = v.Create(t.Context())
		require.NoError(t, err)
		assert.False(t, created)
		assert.Len(t, runner.calls, 1, "re-creation must not be attempted")
	})

	t.Run("prefers uv with pinned version", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		cfg := testConfig(t)
		runner := &fakeRunner{available: map[string]string{
			"uv":         "/usr/bin/uv",
			"python3.11": "/usr/bin/python3.11",
		}}
		v := NewVenv(root, cfg, runner, discardLogger())

		_, err := v.Create(t.Context())
		require.NoError(t, err)
		require.Len(t, runner.calls, 1)
		assert.Equal(t, "uv", runner.calls[0].name)
		assert.Equal(t, root, runner.calls[0].dir)
		assert.Equal(t, []string{"venv", "--python", "3.11", v.Dir()}, runner.calls[0].args)
	})

	t.Run("falls back to versioned interpreter", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		cfg := testConfig(t)
		runner := &fakeRunner{available: map[string]string{"python3.11": "/usr/bin/python3.11"}}
		v := NewVenv(root, cfg, runner, discardLogger())

		_, err := v.Create(t.Context())
		require.NoError(t, err)
		require.Len(t, runner.calls, 1)
		assert.Equal(t, "python3.11", runner.calls[0].name)
		assert.Equal(t, []string{"-m", "venv", v.Dir()}, runner.calls[0].args)
	})

	t.Run("patch version uses major.minor interpreter", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		cfg := testConfig(t)
		cfg.Python.Version = "3.11.4"
		runner := &fakeRunner{available: map[string]string{"python3.11": "/usr/bin/python3.11"}}
		v := NewVenv(root, cfg, runner, discardLogger())

		_, err := v.Create(t.Context())
		require.NoError(t, err)
		require.Len(t, runner.calls, 1)
		assert.Equal(t, "python3.11", runner.calls[0].name)
	})

	t.Run("no tool available", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		cfg := testConfig(t)
		runner := &fakeRunner{}
		v := NewVenv(root, cfg, runner, discardLogger())

		_, err := v.Create(t.Context())
		var target *ToolNotFoundError
		require.ErrorAs(t, err, &target)
		assert.Empty(t, runner.calls)
	})

	t.Run("tool failure propagates", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		cfg := testConfig(t)
		runner := &fakeRunner{
			available: map[string]string{"uv": "/usr/bin/uv"},
			runErr:    os.ErrPermission,
		}
		v := NewVenv(root, cfg, runner, discardLogger())

		_, err := v.Create(t.Context())
		var target *ToolFailedError
		require.ErrorAs(t, err, &target)
		assert.ErrorIs(t, err, os.ErrPermission)
		assert.Contains(t, err.Error(), "tool output")
	})
}

func TestVenvLookTool(t *testing.T) {
	t.Parallel()

	t.Run("prefers environment bin dir when present", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		cfg := testConfig(t)
		v := NewVenv(root, cfg, &fakeRunner{available: map[string]string{
			"black": "/usr/bin/black",
		}}, discardLogger())
		require.NoError(t, os.MkdirAll(v.BinDir(), 0o750))

		envBlack := filepath.Join(v.BinDir(), "black")
		runner := &fakeRunner{available: map[string]string{
			envBlack: envBlack,
			"black":  "/usr/bin/black",
		}}
		v = NewVenv(root, cfg, runner, discardLogger())

		path, err := v.LookTool("black")
		require.NoError(t, err)
		assert.Equal(t, envBlack, path)
	})

	t.Run("falls back to PATH without environment", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		cfg := testConfig(t)
		runner := &fakeRunner{available: map[string]string{"black": "/usr/bin/black"}}
		v := NewVenv(root, cfg, runner, discardLogger())

		path, err := v.LookTool("black")
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/black", path)
	})
}

func TestActivationHint(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	v := NewVenv(t.TempDir(), cfg, &fakeRunner{}, discardLogger())

	hint := v.ActivationHint()
	lines := strings.Split(strings.TrimRight(hint, "\n"), "\n")
	require.Len(t, lines, 2, "one line per platform family")
	assert.Contains(t, lines[0], "source .venv/bin/activate")
	assert.Contains(t, lines[1], `.venv\Scripts\activate`)
}

func TestMajorMinor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "3.11", majorMinor("3.11"))
	assert.Equal(t, "3.11", majorMinor("3.11.4"))
	assert.Equal(t, "3", majorMinor("3"))
}

func TestBinDirForOS(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("env", "bin"), binDirForOS("env", "linux"))
	assert.Equal(t, filepath.Join("env", "bin"), binDirForOS("env", "darwin"))
	assert.Equal(t, filepath.Join("env", "Scripts"), binDirForOS("env", "windows"))
}
