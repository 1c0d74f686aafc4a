package dataset

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cellworks/battctl/internal/config"
	"github.com/cellworks/battctl/internal/validator"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	l, err := NewLoader(validator.NewSanthoshCompiler(), discardLogger())
	require.NoError(t, err)
	return l
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	require.NoError(t, cfg.Validate())
	return cfg
}

// oneBatteryFile is a minimal valid cycle file: one battery with two cycles.
const oneBatteryFile = `{
  "battery": [
    {
      "cycles": [
        {
          "relative_time_min": [0, 10, 20],
          "current_A": [1.0, 1.5, 0.5],
          "voltage_V": [3.0, 3.6, 4.2],
          "temperature_C": [25, 30, 35],
          "capacity": [1.1]
        },
        {
          "relative_time_min": [0, 12],
          "current_A": [1.0, 1.2],
          "voltage_V": [3.1, 4.0],
          "temperature_C": [26, 31],
          "capacity": [1.0, 999]
        }
      ]
    }
  ]
}`

func writeCycleFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
