// Package toolchain wraps the external developer tools battctl delegates to:
// the Python environment creator and the code formatter.
package toolchain

import (
	"context"
	"os/exec"
)

// Runner executes external tools. It exists so commands can be tested
// without the real binaries installed.
type Runner interface {
	// Look resolves the path of a tool, like exec.LookPath.
	Look(name string) (string, error)
	// Run executes the tool inside dir and returns its combined output.
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner is the concrete Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Look resolves the path of a tool via exec.LookPath.
func (r *ExecRunner) Look(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes the tool with dir as its working directory and returns its
// combined output. The directory matters: callers pass workspace-relative
// file arguments, which must resolve against the workspace root rather than
// whatever directory battctl itself was started from. Failures carry the
// tool's exit status through the wrapped exec error.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
