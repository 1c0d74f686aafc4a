// Package report renders dataset summaries for CLI consumption.
package report

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/cellworks/battctl/internal/dataset"
)

// JSONReporter implements Reporter for JSON output.
type JSONReporter struct{}

type jsonDescribe struct {
	Mean float64  `json:"mean"`
	Min  float64  `json:"min"`
	Max  float64  `json:"max"`
	Std  *float64 `json:"std"`
}

type jsonDataset struct {
	Key             string  `json:"key"`
	Cycles          int     `json:"cycles"`
	InitialCapacity float64 `json:"initialCapacity"`
	FinalCapacity   float64 `json:"finalCapacity"`
	FadePercent     float64 `json:"fadePercent"`
}

type jsonOutput struct {
	GeneratedAt    string                  `json:"generatedAt"`
	TotalBatteries int                     `json:"totalBatteries"`
	TotalCycles    int                     `json:"totalCycles"`
	Capacity       jsonDescribe            `json:"capacity"`
	ByCycleType    map[string]jsonDescribe `json:"byCycleType"`
	Datasets       []jsonDataset           `json:"datasets"`
}

func (jr *JSONReporter) Write(w io.Writer, s *dataset.Summary) error {
	out := jsonOutput{
		GeneratedAt:    s.GeneratedAt.Format(time.RFC3339),
		TotalBatteries: s.TotalBatteries,
		TotalCycles:    s.TotalCycles,
		Capacity:       toJSONDescribe(s.Capacity),
		ByCycleType:    make(map[string]jsonDescribe, len(s.ByCycleType)),
	}

	for ct, d := range s.ByCycleType {
		out.ByCycleType[string(ct)] = toJSONDescribe(d)
	}

	for _, ds := range s.Datasets {
		out.Datasets = append(out.Datasets, jsonDataset{
			Key:             ds.Key,
			Cycles:          ds.Cycles,
			InitialCapacity: ds.InitialCapacity,
			FinalCapacity:   ds.FinalCapacity,
			FadePercent:     ds.FadePercent,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// toJSONDescribe nulls out a NaN deviation, which encoding/json cannot
// represent.
func toJSONDescribe(d dataset.Describe) jsonDescribe {
	jd := jsonDescribe{Mean: d.Mean, Min: d.Min, Max: d.Max}
	if !math.IsNaN(d.Std) {
		std := d.Std
		jd.Std = &std
	}
	return jd
}
