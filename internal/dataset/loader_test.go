package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDir(t *testing.T) {
	t.Parallel()

	t.Run("extracts per-cycle features", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeCycleFile(t, dir, "batch1.json", oneBatteryFile)

		l := newTestLoader(t)
		datasets, err := l.LoadDir(t.Context(), dir, CycleTypeCharge)
		require.NoError(t, err)
		require.Len(t, datasets, 1)

		ds := datasets[0]
		assert.Equal(t, 1, ds.BatteryID)
		assert.Equal(t, CycleTypeCharge, ds.CycleType)
		assert.Equal(t, "battery_1_charge", ds.Key())
		require.Len(t, ds.Cycles, 2)

		first := ds.Cycles[0]
		assert.Equal(t, 0, first.CycleIdx)
		assert.InDelta(t, 10, first.TimeMean, 1e-12)
		assert.InDelta(t, 20, first.TimeMax, 1e-12)
		assert.InDelta(t, 1.0, first.CurrentMean, 1e-12)
		assert.InDelta(t, 1.5, first.CurrentMax, 1e-12)
		assert.InDelta(t, 3.6, first.VoltageMean, 1e-12)
		assert.InDelta(t, 4.2, first.VoltageMax, 1e-12)
		assert.InDelta(t, 30, first.TemperatureMean, 1e-12)
		assert.InDelta(t, 35, first.TemperatureMax, 1e-12)
		assert.InDelta(t, 1.1, first.Capacity, 1e-12)

		// Capacity takes the first element of the vector.
		second := ds.Cycles[1]
		assert.Equal(t, 1, second.CycleIdx)
		assert.InDelta(t, 1.0, second.Capacity, 1e-12)

		assert.Equal(t, []float64{1.1, 1.0}, ds.Capacities)
	})

	t.Run("battery ids restart per file, order follows file names", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeCycleFile(t, dir, "b.json", oneBatteryFile)
		writeCycleFile(t, dir, "a.json", oneBatteryFile)

		l := newTestLoader(t)
		datasets, err := l.LoadDir(t.Context(), dir, CycleTypePartialCharge)
		require.NoError(t, err)
		require.Len(t, datasets, 2)
		assert.Equal(t, 1, datasets[0].BatteryID)
		assert.Equal(t, 1, datasets[1].BatteryID)
		assert.Equal(t, "battery_1_partial_charge", datasets[0].Key())
	})

	t.Run("non-json entries are skipped", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeCycleFile(t, dir, "batch1.json", oneBatteryFile)
		writeCycleFile(t, dir, "notes.txt", "not data")

		l := newTestLoader(t)
		datasets, err := l.LoadDir(t.Context(), dir, CycleTypeCharge)
		require.NoError(t, err)
		assert.Len(t, datasets, 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		l := newTestLoader(t)
		_, err := l.LoadDir(t.Context(), t.TempDir()+"/missing", CycleTypeCharge)
		require.Error(t, err)
	})

	t.Run("schema violation is rejected", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		// capacity must be a non-empty array
		writeCycleFile(t, dir, "bad.json", `{
  "battery": [
    {
      "cycles": [
        {
          "relative_time_min": [0],
          "current_A": [1],
          "voltage_V": [3],
          "temperature_C": [25],
          "capacity": []
        }
      ]
    }
  ]
}`)

		l := newTestLoader(t)
		_, err := l.LoadDir(t.Context(), dir, CycleTypeCharge)
		var target *InvalidCycleFileError
		require.ErrorAs(t, err, &target)
		assert.Contains(t, target.Path, "bad.json")
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeCycleFile(t, dir, "bad.json", "{not json")

		l := newTestLoader(t)
		_, err := l.LoadDir(t.Context(), dir, CycleTypeCharge)
		var target *InvalidCycleFileError
		require.ErrorAs(t, err, &target)
	})

	t.Run("empty directory loads nothing", func(t *testing.T) {
		t.Parallel()
		l := newTestLoader(t)
		datasets, err := l.LoadDir(t.Context(), t.TempDir(), CycleTypeCharge)
		require.NoError(t, err)
		assert.Empty(t, datasets)
	})
}
