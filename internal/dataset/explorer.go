package dataset

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/cellworks/battctl/internal/config"
)

// Explorer accumulates battery cycle datasets and produces summaries over
// them. It mirrors a typical exploration pass over the MIT battery dataset:
// load charge and partial-charge histories, then summarise capacity.
type Explorer struct {
	root   string
	cfg    *config.Config
	loader *Loader
	logger *slog.Logger

	// datasets is keyed like "battery_3_charge". A later file claiming the
	// same battery position and cycle type replaces the earlier entry.
	datasets map[string]*BatteryDataset
	summary  []CycleFeatures
}

// NewExplorer creates an Explorer rooted at the workspace directory.
func NewExplorer(root string, cfg *config.Config, loader *Loader, logger *slog.Logger) *Explorer {
	return &Explorer{
		root:     root,
		cfg:      cfg,
		loader:   loader,
		logger:   logger.With("component", "explorer"),
		datasets: make(map[string]*BatteryDataset),
	}
}

// LoadCharge loads full charge cycle histories from <dataRoot>/charge.
func (e *Explorer) LoadCharge(ctx context.Context) error {
	return e.loadCycleType(ctx, CycleTypeCharge)
}

// LoadPartialCharge loads partial charge cycle histories from
// <dataRoot>/partial_charge.
func (e *Explorer) LoadPartialCharge(ctx context.Context) error {
	return e.loadCycleType(ctx, CycleTypePartialCharge)
}

func (e *Explorer) loadCycleType(ctx context.Context, ct CycleType) error {
	dir := filepath.Join(e.root, e.cfg.Dataset.DataRoot, string(ct))
	datasets, err := e.loader.LoadDir(ctx, dir, ct)
	if err != nil {
		return err
	}

	for _, ds := range datasets {
		e.datasets[ds.Key()] = ds
		e.summary = append(e.summary, ds.Cycles...)
	}

	e.logger.Info("Loaded "+string(ct)+" data", "datasets", len(e.datasets))
	return nil
}

// DatasetSummary is the per-battery slice of a Summary.
type DatasetSummary struct {
	Key             string
	Cycles          int
	InitialCapacity float64
	FinalCapacity   float64
	FadePercent     float64
}

// Summary is the result of summarising everything loaded so far.
type Summary struct {
	GeneratedAt    time.Time
	TotalBatteries int
	TotalCycles    int
	Capacity       Describe
	ByCycleType    map[CycleType]Describe
	Datasets       []DatasetSummary
	Rows           []CycleFeatures
}

// CycleTypes returns the cycle types present in the summary, sorted.
func (s *Summary) CycleTypes() []CycleType {
	cts := make([]CycleType, 0, len(s.ByCycleType))
	for ct := range s.ByCycleType {
		cts = append(cts, ct)
	}
	slices.Sort(cts)
	return cts
}

// Summarize computes the dataset summary. The overall capacity deviation is
// the population standard deviation; the per-cycle-type deviation uses the
// sample correction, matching how grouped aggregates are reported.
func (e *Explorer) Summarize() (*Summary, error) {
	if len(e.summary) == 0 {
		return nil, &EmptyDatasetError{DataRoot: e.cfg.Dataset.DataRoot}
	}

	all := make([]float64, 0, len(e.summary))
	byType := make(map[CycleType][]float64)
	for _, c := range e.summary {
		all = append(all, c.Capacity)
		byType[c.CycleType] = append(byType[c.CycleType], c.Capacity)
	}

	s := &Summary{
		GeneratedAt:    time.Now(),
		TotalBatteries: len(e.datasets),
		TotalCycles:    len(e.summary),
		Capacity:       describe(all, populationStd),
		ByCycleType:    make(map[CycleType]Describe, len(byType)),
		Rows:           e.summary,
	}
	for ct, caps := range byType {
		s.ByCycleType[ct] = describe(caps, sampleStd)
	}

	keys := make([]string, 0, len(e.datasets))
	for k := range e.datasets {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		ds := e.datasets[k]
		s.Datasets = append(s.Datasets, DatasetSummary{
			Key:             k,
			Cycles:          len(ds.Cycles),
			InitialCapacity: ds.InitialCapacity(),
			FinalCapacity:   ds.FinalCapacity(),
			FadePercent:     ds.FadePercent(),
		})
	}

	return s, nil
}
