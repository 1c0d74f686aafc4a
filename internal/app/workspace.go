package app

import (
	"path/filepath"

	"github.com/cellworks/battctl/internal/config"
)

// Workspace is a resolved workspace root together with its configuration.
type Workspace struct {
	Root   string
	Config *config.Config
}

// OutputDir returns the absolute CSV output directory.
func (w *Workspace) OutputDir() string {
	return filepath.Join(w.Root, w.Config.Dataset.OutputDir)
}

// DataRoot returns the absolute dataset root directory.
func (w *Workspace) DataRoot() string {
	return filepath.Join(w.Root, w.Config.Dataset.DataRoot)
}
