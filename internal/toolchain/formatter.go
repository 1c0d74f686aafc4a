package toolchain

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/cellworks/battctl/internal/config"
)

// Formatter invokes the configured code formatter over the workspace's
// source files. Idempotence on already-formatted input is the formatter's
// own guarantee; battctl passes identical arguments on every run.
type Formatter struct {
	root   string
	cfg    *config.Config
	venv   *Venv
	runner Runner
	logger *slog.Logger
}

// NewFormatter creates a Formatter rooted at the workspace directory.
func NewFormatter(root string, cfg *config.Config, venv *Venv, runner Runner, logger *slog.Logger) *Formatter {
	return &Formatter{
		root:   root,
		cfg:    cfg,
		venv:   venv,
		runner: runner,
		logger: logger.With("component", "formatter"),
	}
}

// Format runs the formatter once over every file matched by the include
// globs. The environment directory is used for tool resolution when present
// but its absence is not an error.
func (f *Formatter) Format(ctx context.Context) error {
	tool, err := f.venv.LookTool(f.cfg.Formatter.Tool)
	if err != nil {
		return &ToolNotFoundError{
			Tool: f.cfg.Formatter.Tool,
			Hint: "Run 'battctl setup' and install it into the environment",
		}
	}

	files, err := f.MatchFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		f.logger.Info("No files matched the formatter globs")
		return nil
	}

	args := make([]string, 0, len(files)+2)
	args = append(args, "--line-length", strconv.Itoa(f.cfg.Formatter.LineLength))
	args = append(args, files...)

	f.logger.Debug("running formatter", "tool", tool, "files", len(files))
	out, err := f.runner.Run(ctx, f.root, tool, args...)
	if err != nil {
		return &ToolFailedError{Tool: f.cfg.Formatter.Tool, Output: out, Wrapped: err}
	}

	f.logger.Info("Formatted " + strconv.Itoa(len(files)) + " file(s)")
	return nil
}

// MatchFiles expands the include globs into a sorted, de-duplicated list of
// workspace-relative file paths. The environment directory and dot-directories
// are never descended into.
func (f *Formatter) MatchFiles() ([]string, error) {
	seen := map[string]bool{}
	var files []string

	for _, pattern := range f.cfg.Formatter.Include {
		matches, err := f.expandPattern(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	slices.Sort(files)
	return files, nil
}

// Matches reports whether a workspace-relative path is covered by any of the
// include globs. Used by watch mode to filter change events.
func (f *Formatter) Matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return false
		}
	}
	for _, pattern := range f.cfg.Formatter.Include {
		pattern = filepath.ToSlash(pattern)
		if idx := strings.Index(pattern, "**/"); idx >= 0 {
			prefix := pattern[:idx]
			suffix := pattern[idx+len("**/"):]
			if !strings.HasPrefix(rel, prefix) {
				continue
			}
			if ok, _ := filepath.Match(suffix, filepath.Base(rel)); ok {
				return true
			}
			continue
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// expandPattern expands one glob. Patterns containing "**" walk the tree;
// plain patterns go through filepath.Glob.
func (f *Formatter) expandPattern(pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)

	idx := strings.Index(pattern, "**/")
	if idx < 0 {
		matches, err := filepath.Glob(filepath.Join(f.root, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, err
		}
		var rels []string
		for _, m := range matches {
			rel, rErr := filepath.Rel(f.root, m)
			if rErr != nil {
				return nil, rErr
			}
			rels = append(rels, rel)
		}
		return rels, nil
	}

	base := filepath.Join(f.root, filepath.FromSlash(pattern[:idx]))
	namePattern := pattern[idx+len("**/"):]
	envDir := f.venv.Dir()

	var rels []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A missing base directory just matches nothing.
			if path == base {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			if path == envDir || (strings.HasPrefix(d.Name(), ".") && path != base) {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(namePattern, d.Name()); ok {
			rel, rErr := filepath.Rel(f.root, path)
			if rErr != nil {
				return rErr
			}
			rels = append(rels, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rels, nil
}
