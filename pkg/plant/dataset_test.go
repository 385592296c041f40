package plant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `{
  "Operation Module": {
    "Reactor 1": {"status": "Online", "power_output_mw": 950, "temp_c": 318.5},
    "Turbine": {"status": "Standby", "rpm": 0},
    "Cooling Tower": {"flow_rate_gpm": 1200, "status": "Offline"}
  },
  "Safety Module": {
    "Fire Suppression": {"status": "Online", "last_test": "2024-01-01", "armed": true}
  },
  "Environmental & Compliance Module": {
    "Emissions Monitor": {"status": "Online", "co2_ppm": 412}
  }
}`

func decodeSample(t *testing.T) *Dataset {
	t.Helper()
	var d Dataset
	require.NoError(t, json.Unmarshal([]byte(sampleDataset), &d))
	return &d
}

func TestDatasetPreservesOrder(t *testing.T) {
	d := decodeSample(t)

	assert.Equal(t, []string{CategoryOperation, CategorySafety, CategoryEnvironmental}, d.Categories())
	assert.Equal(t, []string{"Reactor 1", "Turbine", "Cooling Tower"}, d.Modules(CategoryOperation))
	assert.Equal(t, 5, d.Len())

	rec, ok := d.Lookup(CategoryOperation, "Cooling Tower")
	require.True(t, ok)
	assert.Equal(t, "Offline", rec.Status)
	assert.Equal(t, []string{"flow_rate_gpm"}, rec.Keys())
}

func TestDatasetLookupMiss(t *testing.T) {
	d := decodeSample(t)

	_, ok := d.Lookup("Unknown Module", "Reactor 1")
	assert.False(t, ok)
	_, ok = d.Lookup(CategoryOperation, "Reactor 9")
	assert.False(t, ok)

	var nilSet *Dataset
	_, ok = nilSet.Lookup(CategoryOperation, "Reactor 1")
	assert.False(t, ok)
	assert.Empty(t, nilSet.Categories())
	assert.Equal(t, 0, nilSet.Len())
}

func TestDatasetNullEntriesAreMisses(t *testing.T) {
	var d Dataset
	require.NoError(t, json.Unmarshal([]byte(`{"A": null, "B": {"x": null, "y": {"status": "Online"}}}`), &d))

	assert.Equal(t, []string{"B"}, d.Categories())
	_, ok := d.Lookup("B", "x")
	assert.False(t, ok)
	rec, ok := d.Lookup("B", "y")
	require.True(t, ok)
	assert.Equal(t, "Online", rec.Status)
}

func TestDatasetRejectsNonObject(t *testing.T) {
	var d Dataset
	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &d))
	assert.Error(t, json.Unmarshal([]byte(`{"A": "nope"}`), &d))
}

func TestDatasetRoundTripKeepsOrder(t *testing.T) {
	d := NewDataset().
		Set("Z", "b", NewRecord("Online").Set("zeta", 1.0).Set("alpha", "x")).
		Set("Z", "a", NewRecord("Offline"))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Z":{"b":{"status":"Online","zeta":1,"alpha":"x"},"a":{"status":"Offline"}}}`, string(data))
	assert.Equal(t, `{"Z":{"b":{"status":"Online","zeta":1,"alpha":"x"},"a":{"status":"Offline"}}}`, string(data))
}

func TestRecordDetails(t *testing.T) {
	d := decodeSample(t)

	rec, ok := d.Lookup(CategoryOperation, "Reactor 1")
	require.True(t, ok)
	assert.Equal(t, []Detail{
		{Key: "power_output_mw", Label: "Power Output Mw", Value: "950"},
		{Key: "temp_c", Label: "Temp C", Value: "318.5"},
	}, rec.Details())

	rec, ok = d.Lookup(CategorySafety, "Fire Suppression")
	require.True(t, ok)
	details := rec.Details()
	require.Len(t, details, 2)
	assert.Equal(t, "2024-01-01", details[0].Value)
	assert.Equal(t, "Armed", details[1].Label)
	assert.Equal(t, "true", details[1].Value)
}

func TestRecordStatusOnly(t *testing.T) {
	rec := NewRecord("Online")
	assert.Empty(t, rec.Details())

	v, ok := rec.Get("status")
	assert.True(t, ok)
	assert.Equal(t, "Online", v)

	rec.Set("status", "Standby")
	assert.Equal(t, "Standby", rec.Status)
	assert.Empty(t, rec.Keys())
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{"text", "text"},
		{float64(3), "3"},
		{0.25, "0.25"},
		{false, "false"},
		{[]any{1.0, "a"}, `[1,"a"]`},
		{map[string]any{"k": "v"}, `{"k":"v"}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatValue(tt.in))
	}
}
