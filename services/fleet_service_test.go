// services/fleet_service_test.go
package services

import (
	"testing"

	"github.com/adnansk/wheels-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFleet() []models.Vehicle {
	return []models.Vehicle{
		{
			VehicleID: "v1", Make: "Honda", VehicleName: "City", Category: "Car",
			Class: "Sedan", FuelType: "Petrol", Drivetrain: "FWD", Gearbox: "Manual",
			Colors: "White", Owners: "Adnan, Sameer", RcOwner: "Adnan",
			ModelYear: "2019", Power: "119",
		},
		{
			VehicleID: "v2", Make: "Yamaha", VehicleName: "FZ", Category: "Bike",
			Class: "Naked", FuelType: "Petrol", Drivetrain: "RWD", Gearbox: "Manual",
			Colors: "Black, Blue", Owners: "Sameer", RcOwner: "Sameer",
			ModelYear: "2021", Power: "12.4",
		},
		{
			VehicleID: "v3", Make: "Tata", VehicleName: "Nexon EV", Category: "Car",
			Class: "SUV", FuelType: "Electric", Drivetrain: "FWD", Gearbox: "Automatic",
			Colors: "Blue", Owners: "Adnan", RcOwner: "Adnan",
			ModelYear: "2023", Power: "", // power unknown
		},
	}
}

func vehicleIDs(vehicles []models.Vehicle) []string {
	ids := make([]string, len(vehicles))
	for i, v := range vehicles {
		ids[i] = v.VehicleID
	}
	return ids
}

func TestApplyFilters_EmptyCriteriaKeepsEverything(t *testing.T) {
	fleet := testFleet()
	out := ApplyFilters(fleet, models.FilterCriteria{}, "")

	assert.Equal(t, vehicleIDs(fleet), vehicleIDs(out))
}

func TestApplyFilters_FacetsAndTogether(t *testing.T) {
	out := ApplyFilters(testFleet(), models.FilterCriteria{
		Category: []string{"Car"},
		FuelType: []string{"Petrol"},
	}, "")

	assert.Equal(t, []string{"v1"}, vehicleIDs(out))
}

func TestApplyFilters_MultiValuedFacetsIntersect(t *testing.T) {
	out := ApplyFilters(testFleet(), models.FilterCriteria{
		Colors: []string{"Blue"},
	}, "")
	assert.Equal(t, []string{"v2", "v3"}, vehicleIDs(out))

	out = ApplyFilters(testFleet(), models.FilterCriteria{
		Owners: []string{"adnan"},
	}, "")
	assert.Equal(t, []string{"v1", "v3"}, vehicleIDs(out), "owner match is case-insensitive")
}

func TestApplyFilters_SearchCoversNameOwnersAndClass(t *testing.T) {
	out := ApplyFilters(testFleet(), models.FilterCriteria{}, "nexon")
	assert.Equal(t, []string{"v3"}, vehicleIDs(out))

	out = ApplyFilters(testFleet(), models.FilterCriteria{}, "sameer")
	assert.Equal(t, []string{"v1", "v2"}, vehicleIDs(out))

	out = ApplyFilters(testFleet(), models.FilterCriteria{}, "suv")
	assert.Equal(t, []string{"v3"}, vehicleIDs(out))

	out = ApplyFilters(testFleet(), models.FilterCriteria{}, "tractor")
	assert.Empty(t, out)
}

func TestApplySort_DescendingWithMissingAsZero(t *testing.T) {
	fleet := testFleet()
	out := ApplySort(fleet, "power")

	assert.Equal(t, []string{"v1", "v2", "v3"}, vehicleIDs(out), "blank power sorts as 0, last")
	assert.Equal(t, "v1", fleet[0].VehicleID, "input order untouched")
}

func TestApplySort_UnknownFieldKeepsOrder(t *testing.T) {
	fleet := testFleet()
	out := ApplySort(fleet, "vehicleName")

	assert.Equal(t, vehicleIDs(fleet), vehicleIDs(out))
}

func TestGroupVehicles_None(t *testing.T) {
	groups := GroupVehicles(testFleet(), "none", "")

	require.Len(t, groups, 1)
	assert.Equal(t, GroupAllVehicles, groups[0].Name)
	assert.Len(t, groups[0].Vehicles, 3)
}

func TestGroupVehicles_OwnersSplitsOnIdentity(t *testing.T) {
	groups := GroupVehicles(testFleet(), "owners", "Adnan")

	require.Len(t, groups, 2)
	assert.Equal(t, GroupMyWheels, groups[0].Name)
	assert.Equal(t, []string{"v1", "v3"}, vehicleIDs(groups[0].Vehicles))
	assert.Equal(t, GroupSharedWheels, groups[1].Name)
	assert.Equal(t, []string{"v2"}, vehicleIDs(groups[1].Vehicles))
}

func TestGroupVehicles_OwnersWithUnknownIdentity(t *testing.T) {
	groups := GroupVehicles(testFleet(), "owners", "Nobody")

	require.Len(t, groups, 1)
	assert.Equal(t, GroupSharedWheels, groups[0].Name)
	assert.Len(t, groups[0].Vehicles, 3)
}

func TestGroupVehicles_ByFieldFirstEncounteredOrder(t *testing.T) {
	groups := GroupVehicles(testFleet(), "category", "")

	require.Len(t, groups, 2)
	assert.Equal(t, "Car", groups[0].Name)
	assert.Equal(t, []string{"v1", "v3"}, vehicleIDs(groups[0].Vehicles))
	assert.Equal(t, "Bike", groups[1].Name)
}

func TestGroupVehicles_BlankValueGroupsAsUnknown(t *testing.T) {
	fleet := testFleet()
	fleet[1].Category = ""

	groups := GroupVehicles(fleet, "category", "")

	require.Len(t, groups, 2)
	assert.Equal(t, GroupUnknown, groups[1].Name)
	assert.Equal(t, []string{"v2"}, vehicleIDs(groups[1].Vehicles))
}

func TestGroupVehicles_Partition(t *testing.T) {
	fleet := testFleet()
	groups := GroupVehicles(fleet, "fuelType", "")

	total := 0
	for _, g := range groups {
		total += len(g.Vehicles)
	}
	assert.Equal(t, len(fleet), total, "grouping must not drop or duplicate vehicles")
}

func TestFacetCounts_MultiValuedCellsExpand(t *testing.T) {
	counts := FacetCounts(testFleet())

	assert.Equal(t, 2, counts["colors"]["Blue"])
	assert.Equal(t, 1, counts["colors"]["White"])
	assert.Equal(t, 2, counts["owners"]["Adnan"])
	assert.Equal(t, 2, counts["owners"]["Sameer"])
	assert.Equal(t, 2, counts["category"]["Car"])
}

func TestFacetValues_SortedDistinct(t *testing.T) {
	values := FacetValues(testFleet())

	assert.Equal(t, []string{"Black", "Blue", "White"}, values["colors"])
	assert.Equal(t, []string{"Bike", "Car"}, values["category"])
}
