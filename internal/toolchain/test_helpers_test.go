package toolchain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// fakeRunner records tool invocations and serves canned lookups.
type fakeRunner struct {
	// available maps tool names (or path suffixes) to resolved paths.
	available map[string]string
	// runErr is returned from Run when set.
	runErr error
	// onRun, when set, is called for every Run invocation.
	onRun func(name string, args []string)

	calls []runCall
}

type runCall struct {
	dir  string
	name string
	args []string
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

func (r *fakeRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, runCall{dir: dir, name: name, args: args})
	if r.onRun != nil {
		r.onRun(name, args)
	}
	if r.runErr != nil {
		return []byte("tool output"), r.runErr
	}
	return nil, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
