package toolchain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/cellworks/battctl/internal/config"
	"github.com/cellworks/battctl/internal/fsh"
)

// Venv manages the workspace's isolated Python environment. The environment
// directory itself is the only state: its presence means setup already ran.
type Venv struct {
	root   string
	cfg    *config.Config
	runner Runner
	logger *slog.Logger
}

// NewVenv creates a Venv rooted at the workspace directory.
func NewVenv(root string, cfg *config.Config, runner Runner, logger *slog.Logger) *Venv {
	return &Venv{
		root:   root,
		cfg:    cfg,
		runner: runner,
		logger: logger.With("component", "venv"),
	}
}

// Dir returns the absolute path of the environment directory.
func (v *Venv) Dir() string {
	return filepath.Join(v.root, v.cfg.Python.EnvDir)
}

// Exists reports whether the environment directory is present.
func (v *Venv) Exists() bool {
	return fsh.DirExists(v.Dir())
}

// Create creates the environment if it does not already exist, pinned to the
// configured interpreter version. It returns true only when a new environment
// was actually created. uv is preferred when installed; otherwise the stock
// venv module of the versioned interpreter is used. Tool failures are not
// retried.
func (v *Venv) Create(ctx context.Context) (bool, error) {
	if v.Exists() {
		v.logger.Debug("environment already exists", "dir", v.Dir())
		return false, nil
	}

	tool, args, err := v.createCommand()
	if err != nil {
		return false, err
	}

	v.logger.Info(fmt.Sprintf("Creating Python %s environment in %s", v.cfg.Python.Version, v.cfg.Python.EnvDir))
	out, err := v.runner.Run(ctx, v.root, tool, args...)
	if err != nil {
		return false, &ToolFailedError{Tool: tool, Output: out, Wrapped: err}
	}

	return true, nil
}

// createCommand picks the environment-creation tool and its arguments.
func (v *Venv) createCommand() (string, []string, error) {
	if _, err := v.runner.Look("uv"); err == nil {
		return "uv", []string{"venv", "--python", v.cfg.Python.Version, v.Dir()}, nil
	}

	interpreter := "python" + majorMinor(v.cfg.Python.Version)
	if _, err := v.runner.Look(interpreter); err == nil {
		return interpreter, []string{"-m", "venv", v.Dir()}, nil
	}

	return "", nil, &ToolNotFoundError{
		Tool: interpreter,
		Hint: fmt.Sprintf("Install uv or Python %s to create the environment", v.cfg.Python.Version),
	}
}

// BinDir returns the directory inside the environment that holds executables.
func (v *Venv) BinDir() string {
	return binDirForOS(v.Dir(), runtime.GOOS)
}

func binDirForOS(envDir, goos string) string {
	if goos == "windows" {
		return filepath.Join(envDir, "Scripts")
	}
	return filepath.Join(envDir, "bin")
}

// LookTool resolves a tool binary, preferring the environment's bin directory
// when the environment exists and falling back to PATH otherwise. A missing
// environment is never an error here.
func (v *Venv) LookTool(name string) (string, error) {
	if v.Exists() {
		binName := name
		if runtime.GOOS == "windows" {
			binName += ".exe"
		}
		candidate := filepath.Join(v.BinDir(), binName)
		if path, err := v.runner.Look(candidate); err == nil {
			return path, nil
		}
	}
	return v.runner.Look(name)
}

// ActivationHint returns the two-line activation instruction, one line per
// platform family. It is printed on every setup run, whether or not the
// environment was just created.
func (v *Venv) ActivationHint() string {
	return activationHintForDir(v.cfg.Python.EnvDir)
}

func activationHintForDir(envDir string) string {
	return fmt.Sprintf("  source %s/bin/activate      (macOS / Linux)\n  %s\\Scripts\\activate        (Windows)\n",
		envDir, envDir)
}

// majorMinor truncates a "3.11.4" style version to "3.11" so the versioned
// interpreter binary name can be derived.
func majorMinor(version string) string {
	first := -1
	for i, r := range version {
		if r != '.' {
			continue
		}
		if first == -1 {
			first = i
			continue
		}
		return version[:i]
	}
	return version
}
