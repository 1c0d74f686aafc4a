package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cellworks/battctl/internal/dataset"
	"github.com/cellworks/battctl/internal/report"
	"github.com/cellworks/battctl/internal/toolchain"
)

// Manager defines the business logic behind the battctl commands.
type Manager interface {
	// SetupEnv creates the Python environment if missing and always prints
	// the activation hint.
	SetupEnv(ctx context.Context) error
	// FormatSources runs the formatter, optionally re-running on changes.
	FormatSources(ctx context.Context, watch bool) error
	// Explore loads the battery dataset, prints a summary in the given
	// format and exports the summary CSVs.
	Explore(ctx context.Context, format string, verbose, useColour bool) error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation,
// allowing for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) SetupEnv(ctx context.Context) error {
	return l.check().SetupEnv(ctx)
}

func (l *LazyManager) FormatSources(ctx context.Context, watch bool) error {
	return l.check().FormatSources(ctx, watch)
}

func (l *LazyManager) Explore(ctx context.Context, format string, verbose, useColour bool) error {
	return l.check().Explore(ctx, format, verbose, useColour)
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger    *slog.Logger
	workspace *Workspace
	venv      *toolchain.Venv
	formatter *toolchain.Formatter
	explorer  *dataset.Explorer
	out       io.Writer
}

func NewCLIManager(
	l *slog.Logger,
	ws *Workspace,
	v *toolchain.Venv,
	f *toolchain.Formatter,
	e *dataset.Explorer,
) *CLIManager {
	return &CLIManager{
		logger:    l,
		workspace: ws,
		venv:      v,
		formatter: f,
		explorer:  e,
		out:       os.Stdout,
	}
}

func (m *CLIManager) SetupEnv(ctx context.Context) error {
	created, err := m.venv.Create(ctx)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(m.out, "Created Python %s environment in %s\n",
			m.workspace.Config.Python.Version, m.workspace.Config.Python.EnvDir)
	} else {
		fmt.Fprintf(m.out, "Environment %s already exists, skipping creation\n",
			m.workspace.Config.Python.EnvDir)
	}

	// The activation hint is printed on every run, created or not.
	fmt.Fprintln(m.out, "\nTo activate the environment, run:")
	fmt.Fprint(m.out, m.venv.ActivationHint())
	return nil
}

func (m *CLIManager) FormatSources(ctx context.Context, watch bool) error {
	if !watch {
		return m.formatter.Format(ctx)
	}

	if err := m.formatter.Format(ctx); err != nil {
		// In watch mode a failing first pass is reported but does not stop
		// the loop; the next save gets another chance.
		m.logger.Error("Formatting failed", "error", err)
	}

	watcher := toolchain.NewWatcher(m.workspace.Root, m.formatter, m.logger)
	return watcher.Watch(ctx, func(path string) {
		m.logger.Info("Change detected", "path", path)
		if err := m.formatter.Format(ctx); err != nil {
			m.logger.Error("Formatting failed", "error", err)
		}
	})
}

func (m *CLIManager) Explore(ctx context.Context, format string, verbose, useColour bool) error {
	if err := m.explorer.LoadCharge(ctx); err != nil {
		return fmt.Errorf("loading charge data: %w", err)
	}
	if err := m.explorer.LoadPartialCharge(ctx); err != nil {
		return fmt.Errorf("loading partial charge data: %w", err)
	}

	summary, err := m.explorer.Summarize()
	if err != nil {
		return err
	}

	var reporter report.Reporter
	switch format {
	case "json":
		reporter = &report.JSONReporter{}
	default:
		reporter = &report.TextReporter{Verbose: verbose, UseColour: useColour}
	}
	if err := reporter.Write(m.out, summary); err != nil {
		return err
	}

	paths, err := summary.Export(m.workspace.OutputDir())
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(m.out, "Saved %s\n", p)
	}

	return nil
}
