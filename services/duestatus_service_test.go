// services/duestatus_service_test.go
package services

import (
	"os"
	"testing"
	"time"

	"github.com/adnansk/wheels-backend/config"
	"github.com/adnansk/wheels-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Engine thresholds normally come from config.yaml; pin the defaults here.
	config.AppConfig.Alerts = config.AlertsConfig{
		UpcomingKM:             1000,
		UpcomingDays:           30,
		DocExpiryDays:          30,
		RegistrationExpiryDays: 90,
	}
	os.Exit(m.Run())
}

var testToday = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func day(offset int) string {
	return testToday.AddDate(0, 0, offset).Format("2006-01-02")
}

func testVehicle(odometer string) *models.Vehicle {
	return &models.Vehicle{
		VehicleID:       "v1",
		Make:            "Honda",
		VehicleName:     "City",
		CurrentOdometer: odometer,
	}
}

func TestComputeDueStatus_NoIntervals(t *testing.T) {
	status := ComputeDueStatus(testVehicle("15000"), nil, nil, testToday)

	assert.True(t, status.NoIntervals)
	assert.Equal(t, models.TierNormal, status.Tier)
	assert.Empty(t, status.Projections)
}

func TestComputeDueStatus_ComponentWithoutHistoryIsSkipped(t *testing.T) {
	intervals := []models.ServiceInterval{
		{VehicleID: "v1", Component: "Engine Oil", ReplaceKM: "5000"},
	}

	status := ComputeDueStatus(testVehicle("15000"), intervals, nil, testToday)

	assert.False(t, status.NoIntervals)
	assert.Empty(t, status.Projections, "an interval with no logged service must not project")
	assert.Equal(t, models.TierNormal, status.Tier)
}

func TestComputeDueStatus_DistanceOverdue(t *testing.T) {
	intervals := []models.ServiceInterval{
		{VehicleID: "v1", Component: "Engine Oil", ReplaceKM: "5000", IntervalDays: "180"},
	}
	history := []models.MaintenanceRecord{
		{VehicleID: "v1", ServiceType: "Engine Oil", Date: day(-200), Odometer: "10000", Action: "Replaced"},
	}

	status := ComputeDueStatus(testVehicle("15000"), intervals, history, testToday)

	require.Len(t, status.Projections, 1)
	proj := status.Projections[0]
	require.NotNil(t, proj.DueKM)
	assert.Equal(t, 15000, *proj.DueKM)
	require.NotNil(t, proj.RemainingKM)
	assert.Equal(t, 0, *proj.RemainingKM)
	require.NotNil(t, proj.RemainingDays)
	assert.Equal(t, -20, *proj.RemainingDays, "both axes trigger")
	assert.Equal(t, models.TierOverdue, proj.Tier)
	assert.Equal(t, models.TierOverdue, status.Tier)
	assert.Equal(t, models.LabelReplace, proj.Label)
}

func TestComputeDueStatus_BothAxesNormal(t *testing.T) {
	intervals := []models.ServiceInterval{
		{VehicleID: "v1", Component: "Engine Oil", ReplaceKM: "5000", IntervalDays: "180"},
	}
	history := []models.MaintenanceRecord{
		{VehicleID: "v1", ServiceType: "Engine Oil", Date: day(-10), Odometer: "12000", Action: "Replaced"},
	}

	status := ComputeDueStatus(testVehicle("15000"), intervals, history, testToday)

	require.Len(t, status.Projections, 1)
	proj := status.Projections[0]
	require.NotNil(t, proj.RemainingKM)
	assert.Equal(t, 2000, *proj.RemainingKM)
	require.NotNil(t, proj.RemainingDays)
	assert.Equal(t, 170, *proj.RemainingDays)
	assert.Equal(t, models.TierNormal, proj.Tier)
}

func TestComputeDueStatus_UpcomingWindow(t *testing.T) {
	intervals := []models.ServiceInterval{
		{VehicleID: "v1", Component: "Air Filter", InspectionKM: "4000"},
	}
	history := []models.MaintenanceRecord{
		{VehicleID: "v1", ServiceType: "Air Filter", Date: day(-30), Odometer: "11500", Action: "Checked"},
	}

	status := ComputeDueStatus(testVehicle("15000"), intervals, history, testToday)

	require.Len(t, status.Projections, 1)
	proj := status.Projections[0]
	require.NotNil(t, proj.RemainingKM)
	assert.Equal(t, 500, *proj.RemainingKM)
	assert.Equal(t, models.TierUpcoming, proj.Tier)
	assert.Equal(t, models.LabelCheck, proj.Label)
}

func TestComputeDueStatus_ReplaceWinsDistanceTie(t *testing.T) {
	intervals := []models.ServiceInterval{
		{VehicleID: "v1", Component: "Coolant", ReplaceKM: "20000", InspectionKM: "20000"},
	}
	history := []models.MaintenanceRecord{
		{VehicleID: "v1", ServiceType: "Coolant", Date: day(-5), Odometer: "10000"},
	}

	status := ComputeDueStatus(testVehicle("15000"), intervals, history, testToday)

	require.Len(t, status.Projections, 1)
	assert.Equal(t, models.LabelReplace, status.Projections[0].Label)
}

func TestComputeDueStatus_SingleOverdueForcesVehicleOverdue(t *testing.T) {
	intervals := []models.ServiceInterval{
		{VehicleID: "v1", Component: "Engine Oil", ReplaceKM: "50000"},
		{VehicleID: "v1", Component: "Brake Pads", InspectionKM: "1000"},
	}
	history := []models.MaintenanceRecord{
		{VehicleID: "v1", ServiceType: "Engine Oil", Date: day(-10), Odometer: "14000"},
		{VehicleID: "v1", ServiceType: "Brake Pads", Date: day(-300), Odometer: "9000"},
	}

	status := ComputeDueStatus(testVehicle("15000"), intervals, history, testToday)

	assert.Equal(t, models.TierOverdue, status.Tier)
}

func TestComputeDueStatus_IgnoresOtherVehicles(t *testing.T) {
	intervals := []models.ServiceInterval{
		{VehicleID: "v2", Component: "Engine Oil", ReplaceKM: "100"},
	}
	history := []models.MaintenanceRecord{
		{VehicleID: "v2", ServiceType: "Engine Oil", Date: day(-500), Odometer: "100"},
	}

	status := ComputeDueStatus(testVehicle("15000"), intervals, history, testToday)

	assert.True(t, status.NoIntervals)
	assert.Empty(t, status.Projections)
}

func TestMaintenanceTier_MatchesComputeDueStatus(t *testing.T) {
	intervals := []models.ServiceInterval{
		{VehicleID: "v1", Component: "Engine Oil", ReplaceKM: "5000", IntervalDays: "180"},
		{VehicleID: "v1", Component: "Brake Pads", InspectionKM: "10000"},
	}
	history := []models.MaintenanceRecord{
		{VehicleID: "v1", ServiceType: "Engine Oil", Date: day(-10), Odometer: "14800"},
		{VehicleID: "v1", ServiceType: "Brake Pads", Date: day(-100), Odometer: "8000"},
	}
	v := testVehicle("15000")

	status := ComputeDueStatus(v, intervals, history, testToday)
	tier := MaintenanceTier(v, intervals, history, testToday)

	assert.Equal(t, status.Tier, tier)
}

func TestCurrentOdometerKM_FallsBackToLatestRecord(t *testing.T) {
	history := []models.MaintenanceRecord{
		{VehicleID: "v1", ServiceType: "Engine Oil", Date: day(-100), Odometer: "9000"},
		{VehicleID: "v1", ServiceType: "Brake Pads", Date: day(-10), Odometer: "12500"},
	}

	km, ok := CurrentOdometerKM(testVehicle(""), history)
	require.True(t, ok)
	assert.Equal(t, 12500, km, "the newest record's odometer is the fallback")

	km, ok = CurrentOdometerKM(testVehicle("15000"), history)
	require.True(t, ok)
	assert.Equal(t, 15000, km, "the odometer cell wins when present")

	_, ok = CurrentOdometerKM(testVehicle(""), nil)
	assert.False(t, ok)
}

func TestRankProjections_NoDuePointSortsLast(t *testing.T) {
	d1 := testToday.AddDate(0, 0, 10)
	d2 := testToday.AddDate(0, 0, 40)
	km := 16000

	projs := []models.DueProjection{
		{Component: "Neither"},
		{Component: "KMOnly", DueKM: &km},
		{Component: "LateDate", DueDate: &d2},
		{Component: "EarlyDate", DueDate: &d1},
	}
	RankProjections(projs)

	names := []string{projs[0].Component, projs[1].Component, projs[2].Component, projs[3].Component}
	assert.Equal(t, []string{"EarlyDate", "LateDate", "KMOnly", "Neither"}, names)
}

func TestRollupHistory_GroupsByOdometer(t *testing.T) {
	history := []models.MaintenanceRecord{
		{VehicleID: "v1", ServiceType: "Engine Oil", Date: day(-100), Odometer: "9000", Cost: "1200"},
		{VehicleID: "v1", ServiceType: "Air Filter", Date: day(-100), Odometer: "9000", Cost: "300"},
		{VehicleID: "v1", ServiceType: "Brake Pads", Date: day(-10), Odometer: "12500", Cost: "2500"},
		{VehicleID: "v1", ServiceType: "Wash", Date: day(-100), Odometer: "9000", Cost: ""},
	}

	rollups := RollupHistory(history)

	require.Len(t, rollups, 2)
	assert.Equal(t, "12500", rollups[0].Odometer, "newest visit first")
	assert.Equal(t, 1, rollups[0].Items)
	assert.Equal(t, "9000", rollups[1].Odometer)
	assert.Equal(t, 3, rollups[1].Items)
	assert.InDelta(t, 1500.0, rollups[1].TotalCost, 0.001, "blank cost adds nothing")
}
