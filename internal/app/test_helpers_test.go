package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cellworks/battctl/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeManager records command dispatches.
type fakeManager struct {
	err error

	setupCalls   int
	formatCalls  []bool
	exploreCalls []exploreCall
}

type exploreCall struct {
	format    string
	verbose   bool
	useColour bool
}

func (f *fakeManager) SetupEnv(_ context.Context) error {
	f.setupCalls++
	return f.err
}

func (f *fakeManager) FormatSources(_ context.Context, watch bool) error {
	f.formatCalls = append(f.formatCalls, watch)
	return f.err
}

func (f *fakeManager) Explore(_ context.Context, format string, verbose, useColour bool) error {
	f.exploreCalls = append(f.exploreCalls, exploreCall{format: format, verbose: verbose, useColour: useColour})
	return f.err
}

// fakeRunner implements toolchain.Runner for manager-level tests.
type fakeRunner struct {
	available map[string]string
	onRun     func(name string, args []string)
	calls     int
}

func (r *fakeRunner) Look(name string) (string, error) {
	if path, ok := r.available[name]; ok {
		return path, nil
	}
	for known, path := range r.available {
		if strings.HasSuffix(name, known) {
			return path, nil
		}
	}
	return "", errors.New("executable file not found in $PATH")
}

func (r *fakeRunner) Run(_ context.Context, _, name string, args ...string) ([]byte, error) {
	r.calls++
	if r.onRun != nil {
		r.onRun(name, args)
	}
	return nil, nil
}

// newTestWorkspace creates a workspace directory with a default config.
func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	root := t.TempDir()
	err := os.WriteFile(filepath.Join(root, config.WorkspaceConfigFile),
		[]byte(config.DefaultConfigContent), 0o600)
	require.NoError(t, err)

	cfg, err := config.New(root)
	require.NoError(t, err)
	return &Workspace{Root: root, Config: cfg}
}
