package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/cellworks/battctl/internal/validator"
)

const cycleFileSchemaID = "https://battctl.dev/battery-cycle-file.schema.json"

// cycleFileSchema is the contract for one raw cycle file: a "battery" array
// of batteries, each holding a "cycles" array of per-cycle measurement
// vectors. Capacity is a vector whose first element is the cycle capacity.
const cycleFileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["battery"],
  "properties": {
    "battery": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["cycles"],
        "properties": {
          "cycles": {
            "type": "array",
            "items": {
              "type": "object",
              "required": [
                "relative_time_min",
                "current_A",
                "voltage_V",
                "temperature_C",
                "capacity"
              ],
              "properties": {
                "relative_time_min": {"type": "array", "items": {"type": "number"}, "minItems": 1},
                "current_A": {"type": "array", "items": {"type": "number"}, "minItems": 1},
                "voltage_V": {"type": "array", "items": {"type": "number"}, "minItems": 1},
                "temperature_C": {"type": "array", "items": {"type": "number"}, "minItems": 1},
                "capacity": {"type": "array", "items": {"type": "number"}, "minItems": 1}
              }
            }
          }
        }
      }
    }
  }
}`

// Loader reads battery cycle files from disk, validating each against the
// cycle file schema before extracting features.
type Loader struct {
	validator validator.Validator
	logger    *slog.Logger
}

// NewLoader compiles the cycle file schema and returns a ready Loader.
func NewLoader(compiler validator.Compiler, logger *slog.Logger) (*Loader, error) {
	schemaDoc, err := validator.ParseJSON([]byte(cycleFileSchema))
	if err != nil {
		return nil, fmt.Errorf("parsing cycle file schema: %w", err)
	}
	if err := compiler.AddSchema(cycleFileSchemaID, schemaDoc); err != nil {
		return nil, fmt.Errorf("registering cycle file schema: %w", err)
	}
	v, err := compiler.Compile(cycleFileSchemaID)
	if err != nil {
		return nil, fmt.Errorf("compiling cycle file schema: %w", err)
	}

	return &Loader{
		validator: v,
		logger:    logger.With("component", "loader"),
	}, nil
}

// LoadDir loads every .json cycle file in dir, labelling the cycles with the
// given cycle type. Files load concurrently but the result order follows the
// sorted file names, so output is deterministic. Battery IDs are 1-based
// positions within each file.
func (l *Loader) LoadDir(ctx context.Context, dir string, ct CycleType) ([]*BatteryDataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, entry.Name())
	}
	slices.Sort(files)

	perFile := make([][]*BatteryDataset, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, name)
			ds, pErr := l.loadFile(path, ct)
			if pErr != nil {
				return pErr
			}
			perFile[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var datasets []*BatteryDataset
	for _, ds := range perFile {
		datasets = append(datasets, ds...)
	}

	l.logger.Debug("loaded cycle files", "dir", dir, "files", len(files), "datasets", len(datasets))
	return datasets, nil
}

// loadFile validates and parses a single cycle file.
func (l *Loader) loadFile(path string, ct CycleType) ([]*BatteryDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := validator.ParseJSON(data)
	if err != nil {
		return nil, &InvalidCycleFileError{Path: path, Wrapped: err}
	}
	if err := l.validator.Validate(doc); err != nil {
		return nil, &InvalidCycleFileError{Path: path, Wrapped: err}
	}

	var datasets []*BatteryDataset
	batteries := gjson.GetBytes(data, "battery").Array()
	for batteryIdx, battery := range batteries {
		ds := &BatteryDataset{
			BatteryID: batteryIdx + 1,
			CycleType: ct,
		}

		for cycleIdx, cycle := range battery.Get("cycles").Array() {
			times := floats(cycle.Get("relative_time_min"))
			currents := floats(cycle.Get("current_A"))
			voltages := floats(cycle.Get("voltage_V"))
			temperatures := floats(cycle.Get("temperature_C"))
			capacity := cycle.Get("capacity").Array()[0].Float()

			ds.Cycles = append(ds.Cycles, CycleFeatures{
				BatteryID:       ds.BatteryID,
				CycleType:       ct,
				CycleIdx:        cycleIdx,
				TimeMean:        mean(times),
				TimeMax:         maxOf(times),
				CurrentMean:     mean(currents),
				CurrentMax:      maxOf(currents),
				VoltageMean:     mean(voltages),
				VoltageMax:      maxOf(voltages),
				TemperatureMean: mean(temperatures),
				TemperatureMax:  maxOf(temperatures),
				Capacity:        capacity,
			})
			ds.Capacities = append(ds.Capacities, capacity)
		}

		datasets = append(datasets, ds)
	}

	return datasets, nil
}

func floats(res gjson.Result) []float64 {
	arr := res.Array()
	xs := make([]float64, 0, len(arr))
	for _, r := range arr {
		xs = append(xs, r.Float())
	}
	return xs
}
