// models/maintenance_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestRecordFor_PicksMaxDate(t *testing.T) {
	history := []MaintenanceRecord{
		{VehicleID: "v1", ServiceType: "Engine Oil", Date: "2024-01-10", Odometer: "8000"},
		{VehicleID: "v1", ServiceType: "Engine Oil", Date: "2025-02-20", Odometer: "12000"},
		{VehicleID: "v1", ServiceType: "Brake Pads", Date: "2025-03-01", Odometer: "12500"},
		{VehicleID: "v2", ServiceType: "Engine Oil", Date: "2025-04-01", Odometer: "500"},
	}

	rec := LatestRecordFor(history, "v1", "Engine Oil")
	require.NotNil(t, rec)
	assert.Equal(t, "12000", rec.Odometer)

	assert.Nil(t, LatestRecordFor(history, "v1", "Coolant"))
	assert.Nil(t, LatestRecordFor(nil, "v1", "Engine Oil"))
}

func TestLatestRecordFor_TieKeepsLastInInputOrder(t *testing.T) {
	history := []MaintenanceRecord{
		{VehicleID: "v1", ServiceType: "Engine Oil", Date: "2025-02-20", Notes: "first"},
		{VehicleID: "v1", ServiceType: "Engine Oil", Date: "2025-02-20", Notes: "second"},
	}

	rec := LatestRecordFor(history, "v1", "Engine Oil")
	require.NotNil(t, rec)
	assert.Equal(t, "second", rec.Notes)
}

func TestLatestRecordFor_SkipsUndatedRecords(t *testing.T) {
	history := []MaintenanceRecord{
		{VehicleID: "v1", ServiceType: "Engine Oil", Date: "", Odometer: "99999"},
		{VehicleID: "v1", ServiceType: "Engine Oil", Date: "2024-05-05", Odometer: "7000"},
	}

	rec := LatestRecordFor(history, "v1", "Engine Oil")
	require.NotNil(t, rec)
	assert.Equal(t, "7000", rec.Odometer)
}

func TestLatestRecord_AcrossComponents(t *testing.T) {
	history := []MaintenanceRecord{
		{VehicleID: "v1", ServiceType: "Engine Oil", Date: "2024-01-10", Odometer: "8000"},
		{VehicleID: "v1", ServiceType: "Brake Pads", Date: "2025-03-01", Odometer: "12500"},
	}

	rec := LatestRecord(history, "v1")
	require.NotNil(t, rec)
	assert.Equal(t, "Brake Pads", rec.ServiceType)
}

func TestParseIntCell(t *testing.T) {
	cases := []struct {
		cell string
		want int
		ok   bool
	}{
		{"15000", 15000, true},
		{"15,000", 15000, true},
		{" 42 ", 42, true},
		{"15000.0", 15000, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseIntCell(tc.cell)
		assert.Equal(t, tc.ok, ok, "cell %q", tc.cell)
		if ok {
			assert.Equal(t, tc.want, got, "cell %q", tc.cell)
		}
	}
}

func TestParseDateCell_Layouts(t *testing.T) {
	for _, cell := range []string{"2025-06-01", "2025-06-01T10:30:00", "01/06/2025", "2025/06/01"} {
		d, ok := ParseDateCell(cell)
		require.True(t, ok, "cell %q", cell)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, 6, int(d.Month()), "cell %q", cell)
	}
	_, ok := ParseDateCell("June 1st")
	assert.False(t, ok)
}
