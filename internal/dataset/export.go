package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

const (
	CycleSummaryCSV     = "battery_cycle_summary.csv"
	CycleTypeSummaryCSV = "battery_cycle_type_summary.csv"
)

// Export writes the summary CSVs into outputDir and returns the written
// paths in order.
func (s *Summary) Export(outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	summaryPath := filepath.Join(outputDir, CycleSummaryCSV)
	if err := writeCSVFile(summaryPath, s.writeCycleSummary); err != nil {
		return nil, err
	}

	groupedPath := filepath.Join(outputDir, CycleTypeSummaryCSV)
	if err := writeCSVFile(groupedPath, s.writeCycleTypeSummary); err != nil {
		return nil, err
	}

	return []string{summaryPath, groupedPath}, nil
}

func writeCSVFile(path string, write func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// writeCycleSummary writes one row per cycle, with the flattened capacity as
// the final column.
func (s *Summary) writeCycleSummary(w *csv.Writer) error {
	header := []string{
		"battery_id", "cycle_type", "cycle_idx",
		"time_mean", "time_max",
		"current_mean", "current_max",
		"voltage_mean", "voltage_max",
		"temperature_mean", "temperature_max",
		"flattened_capacity",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, c := range s.Rows {
		row := []string{
			strconv.Itoa(c.BatteryID),
			string(c.CycleType),
			strconv.Itoa(c.CycleIdx),
			formatFloat(c.TimeMean),
			formatFloat(c.TimeMax),
			formatFloat(c.CurrentMean),
			formatFloat(c.CurrentMax),
			formatFloat(c.VoltageMean),
			formatFloat(c.VoltageMax),
			formatFloat(c.TemperatureMean),
			formatFloat(c.TemperatureMax),
			formatFloat(c.Capacity),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeCycleTypeSummary writes the grouped capacity statistics, one row per
// cycle type.
func (s *Summary) writeCycleTypeSummary(w *csv.Writer) error {
	if err := w.Write([]string{"cycle_type", "mean", "min", "max", "std"}); err != nil {
		return err
	}
	for _, ct := range s.CycleTypes() {
		d := s.ByCycleType[ct]
		row := []string{
			string(ct),
			formatFloat(d.Mean),
			formatFloat(d.Min),
			formatFloat(d.Max),
			formatFloat(d.Std),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
