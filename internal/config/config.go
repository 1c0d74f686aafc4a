// Package config loads and validates the battctl workspace configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/cellworks/battctl/internal/fsh"
)

const WorkspaceConfigFile = "battctl.yml"

// WorkspaceEnvVar names the environment variable which points at the
// workspace root when no --workspace flag is given.
const WorkspaceEnvVar = "BATTCTL_WORKSPACE"

const DefaultConfigContent = `# battctl workspace configuration

# PYTHON ENVIRONMENT
#
# battctl setup creates an isolated Python environment in envDir, pinned to
# the given interpreter version. It prefers uv when available and falls back
# to the stock venv module. The directory acts as the guard: if it already
# exists, setup will not attempt re-creation.
python:
  version: "3.11"
  envDir: ".venv"

# FORMATTER
#
# battctl fmt runs the formatter over every file matched by the include
# globs, always with the same fixed line length. If the environment
# directory exists its bin directory is preferred when resolving the tool.
formatter:
  tool: "black"
  lineLength: 120
  include:
    - "**/*.py"

# DATASET
#
# battctl explore loads battery cycle data from dataRoot (expecting charge/
# and partial_charge/ subdirectories of JSON cycle files) and writes CSV
# summaries into outputDir.
dataset:
  dataRoot: "data/MIT"
  outputDir: "output"
  plotsDir: "plots"
`

type PythonConfig struct {
	Version string `yaml:"version"`
	EnvDir  string `yaml:"envDir"`
}

type FormatterConfig struct {
	Tool       string   `yaml:"tool"`
	LineLength int      `yaml:"lineLength"`
	Include    []string `yaml:"include"`
}

type DatasetConfig struct {
	DataRoot  string `yaml:"dataRoot"`
	OutputDir string `yaml:"outputDir"`
	PlotsDir  string `yaml:"plotsDir"`
}

type Config struct {
	Python    PythonConfig    `yaml:"python"`
	Formatter FormatterConfig `yaml:"formatter"`
	Dataset   DatasetConfig   `yaml:"dataset"`
}

// versionPattern accepts "3.11" or "3.11.4" style interpreter versions.
var versionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)

// New reads and validates battctl.yml from the given workspace root.
func New(workspaceRoot string) (*Config, error) {
	configPath := filepath.Join(workspaceRoot, WorkspaceConfigFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &MissingConfigError{Path: workspaceRoot}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, &InvalidYAMLError{Wrapped: err}
	}

	if vErr := config.Validate(); vErr != nil {
		return nil, vErr
	}

	return &config, nil
}

// Validate applies defaults and rejects unusable values.
func (c *Config) Validate() error {
	if c.Python.Version == "" {
		c.Python.Version = "3.11"
	}
	if !versionPattern.MatchString(c.Python.Version) {
		return &InvalidRuntimeVersionError{Value: c.Python.Version}
	}
	if c.Python.EnvDir == "" {
		c.Python.EnvDir = ".venv"
	}
	if filepath.IsAbs(c.Python.EnvDir) {
		return &MissingPropertyError{Property: "python.envDir (must be workspace-relative)"}
	}

	if c.Formatter.Tool == "" {
		c.Formatter.Tool = "black"
	}
	if c.Formatter.LineLength == 0 {
		c.Formatter.LineLength = 120
	}
	if c.Formatter.LineLength < 0 {
		return &InvalidLineLengthError{Value: c.Formatter.LineLength}
	}
	if len(c.Formatter.Include) == 0 {
		c.Formatter.Include = []string{"**/*.py"}
	}

	if c.Dataset.DataRoot == "" {
		c.Dataset.DataRoot = "data/MIT"
	}
	if c.Dataset.OutputDir == "" {
		c.Dataset.OutputDir = "output"
	}
	if c.Dataset.PlotsDir == "" {
		c.Dataset.PlotsDir = "plots"
	}

	return nil
}

// FindWorkspaceRoot resolves the workspace root directory. Resolution order:
// the explicit path (from --workspace), the BATTCTL_WORKSPACE environment
// variable, then a walk up from the current directory looking for battctl.yml.
func FindWorkspaceRoot(explicit string, pathResolver fsh.PathResolver, envProvider fsh.EnvProvider) (string, error) {
	if explicit == "" {
		explicit = envProvider.Get(WorkspaceEnvVar)
	}

	if explicit != "" {
		root, err := pathResolver.CanonicalPath(explicit)
		if err != nil {
			return "", fmt.Errorf("resolving workspace path %q: %w", explicit, err)
		}
		info, err := os.Stat(root)
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			return "", &WorkspaceNotFoundError{Start: explicit}
		}
		return root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for dir := cwd; ; dir = filepath.Dir(dir) {
		if _, sErr := os.Stat(filepath.Join(dir, WorkspaceConfigFile)); sErr == nil {
			return dir, nil
		}
		if dir == filepath.Dir(dir) {
			return "", &WorkspaceNotFoundError{Start: cwd}
		}
	}
}
