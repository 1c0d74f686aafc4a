// Package dataset loads battery cycle data and computes summary statistics
// over it.
package dataset

import (
	"fmt"
)

// CycleType labels the charge regime a cycle was recorded under.
type CycleType string

const (
	CycleTypeCharge        CycleType = "charge"
	CycleTypePartialCharge CycleType = "partial_charge"
)

// CycleFeatures holds the per-cycle features extracted from the raw
// measurement vectors.
type CycleFeatures struct {
	BatteryID       int
	CycleType       CycleType
	CycleIdx        int
	TimeMean        float64
	TimeMax         float64
	CurrentMean     float64
	CurrentMax      float64
	VoltageMean     float64
	VoltageMax      float64
	TemperatureMean float64
	TemperatureMax  float64
	Capacity        float64
}

// BatteryDataset is the cycle history of one battery under one cycle type.
type BatteryDataset struct {
	BatteryID  int
	CycleType  CycleType
	Cycles     []CycleFeatures
	Capacities []float64
}

// Key identifies the dataset, e.g. "battery_3_charge".
func (d *BatteryDataset) Key() string {
	return fmt.Sprintf("battery_%d_%s", d.BatteryID, d.CycleType)
}

// InitialCapacity returns the capacity of the first recorded cycle.
func (d *BatteryDataset) InitialCapacity() float64 {
	if len(d.Capacities) == 0 {
		return 0
	}
	return d.Capacities[0]
}

// FinalCapacity returns the capacity of the last recorded cycle.
func (d *BatteryDataset) FinalCapacity() float64 {
	if len(d.Capacities) == 0 {
		return 0
	}
	return d.Capacities[len(d.Capacities)-1]
}

// FadePercent returns the capacity fade from the first to the last cycle as
// a percentage of initial capacity.
func (d *BatteryDataset) FadePercent() float64 {
	initial := d.InitialCapacity()
	if initial == 0 {
		return 0
	}
	return (initial - d.FinalCapacity()) / initial * 100
}
