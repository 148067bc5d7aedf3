// services/fleet_service.go
package services

import (
	"sort"
	"strings"

	"github.com/adnansk/wheels-backend/models"
	"github.com/adnansk/wheels-backend/utils"
)

// The fleet pipeline runs filter -> sort -> group over the vehicle list. Each
// stage returns a fresh slice and never mutates its input, so the cached fleet
// can be shared between requests.

// ApplyFilters narrows vehicles to those matching every active facet and the
// search text. Inactive facets (empty selections) match everything.
func ApplyFilters(vehicles []models.Vehicle, criteria models.FilterCriteria, search string) []models.Vehicle {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]models.Vehicle, 0, len(vehicles))
	for i := range vehicles {
		v := &vehicles[i]
		if !matchesCriteria(v, criteria) {
			continue
		}
		if search != "" && !matchesSearch(v, search) {
			continue
		}
		out = append(out, *v)
	}
	return out
}

func matchesCriteria(v *models.Vehicle, c models.FilterCriteria) bool {
	if !facetMatch(c.Make, v.Make) {
		return false
	}
	if !facetMatch(c.Category, v.Category) {
		return false
	}
	if !facetMatch(c.Class, v.Class) {
		return false
	}
	if !facetMatch(c.FuelType, v.FuelType) {
		return false
	}
	if !facetMatch(c.Drivetrain, v.Drivetrain) {
		return false
	}
	if !facetMatch(c.Gearbox, v.Gearbox) {
		return false
	}
	if !facetMatch(c.RcOwner, v.RcOwner) {
		return false
	}
	// Colors and owners are multi-valued on the vehicle; any overlap with the
	// selection matches.
	if !setIntersects(c.Colors, v.ColorList()) {
		return false
	}
	if !setIntersects(c.Owners, v.OwnerList()) {
		return false
	}
	return true
}

// facetMatch checks a single-valued cell against a facet selection. An empty
// selection means the facet is inactive.
func facetMatch(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if utils.SameName(s, value) {
			return true
		}
	}
	return false
}

// setIntersects checks a multi-valued cell against a facet selection.
func setIntersects(selected []string, values []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if utils.ContainsName(values, s) {
			return true
		}
	}
	return false
}

// matchesSearch checks the lowercased search needle against the fields the
// search box covers: the display name, owners, RC owner, category and class.
func matchesSearch(v *models.Vehicle, needle string) bool {
	haystacks := []string{
		v.DisplayName(),
		v.Owners,
		v.RcOwner,
		v.Category,
		v.Class,
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// ApplySort returns a copy sorted descending by a numeric field. Cells that
// are blank or fail to parse sort as 0. An empty or unknown field returns the
// input order unchanged.
func ApplySort(vehicles []models.Vehicle, field string) []models.Vehicle {
	out := make([]models.Vehicle, len(vehicles))
	copy(out, vehicles)

	if field == "" || !models.SortableField(field) {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortValue(field) > out[j].SortValue(field)
	})
	return out
}

const (
	GroupAllVehicles  = "All Vehicles"
	GroupMyWheels     = "My Wheels"
	GroupSharedWheels = "Shared Wheels"
	GroupUnknown      = "Unknown"
)

// GroupVehicles partitions the list. "none" (or "") keeps one "All Vehicles"
// group; "owners" splits on whether identity appears in the owner list; any
// other field groups by its value in first-encountered order, blank values
// under "Unknown".
func GroupVehicles(vehicles []models.Vehicle, groupKey, identity string) []models.VehicleGroup {
	if groupKey == "" || groupKey == "none" {
		return []models.VehicleGroup{{Name: GroupAllVehicles, Vehicles: vehicles}}
	}

	if groupKey == "owners" {
		mine := models.VehicleGroup{Name: GroupMyWheels}
		shared := models.VehicleGroup{Name: GroupSharedWheels}
		for i := range vehicles {
			if vehicles[i].OwnedBy(identity) {
				mine.Vehicles = append(mine.Vehicles, vehicles[i])
			} else {
				shared.Vehicles = append(shared.Vehicles, vehicles[i])
			}
		}
		var groups []models.VehicleGroup
		if len(mine.Vehicles) > 0 {
			groups = append(groups, mine)
		}
		if len(shared.Vehicles) > 0 {
			groups = append(groups, shared)
		}
		return groups
	}

	var groups []models.VehicleGroup
	index := make(map[string]int)
	for i := range vehicles {
		name := strings.TrimSpace(vehicles[i].FieldValue(groupKey))
		if name == "" {
			name = GroupUnknown
		}
		idx, seen := index[name]
		if !seen {
			groups = append(groups, models.VehicleGroup{Name: name})
			idx = len(groups) - 1
			index[name] = idx
		}
		groups[idx].Vehicles = append(groups[idx].Vehicles, vehicles[i])
	}
	return groups
}

// facetFields maps facet names to their cell values. Colors and owners expand
// their comma-separated cells into individual values.
var facetFields = map[string]func(*models.Vehicle) []string{
	"make":       func(v *models.Vehicle) []string { return singleValue(v.Make) },
	"category":   func(v *models.Vehicle) []string { return singleValue(v.Category) },
	"class":      func(v *models.Vehicle) []string { return singleValue(v.Class) },
	"fuelType":   func(v *models.Vehicle) []string { return singleValue(v.FuelType) },
	"drivetrain": func(v *models.Vehicle) []string { return singleValue(v.Drivetrain) },
	"gearbox":    func(v *models.Vehicle) []string { return singleValue(v.Gearbox) },
	"colors":     func(v *models.Vehicle) []string { return v.ColorList() },
	"owners":     func(v *models.Vehicle) []string { return v.OwnerList() },
	"rcOwner":    func(v *models.Vehicle) []string { return singleValue(v.RcOwner) },
}

func singleValue(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	return []string{cell}
}

// FacetValues returns the distinct values per facet, sorted, for rendering
// the filter checkbox groups.
func FacetValues(vehicles []models.Vehicle) map[string][]string {
	counts := FacetCounts(vehicles)
	out := make(map[string][]string, len(counts))
	for facet, values := range counts {
		list := make([]string, 0, len(values))
		for value := range values {
			list = append(list, value)
		}
		sort.Strings(list)
		out[facet] = list
	}
	return out
}

// FacetCounts returns, per facet, how many vehicles carry each value.
func FacetCounts(vehicles []models.Vehicle) map[string]map[string]int {
	out := make(map[string]map[string]int, len(facetFields))
	for facet := range facetFields {
		out[facet] = make(map[string]int)
	}
	for i := range vehicles {
		for facet, get := range facetFields {
			for _, value := range get(&vehicles[i]) {
				out[facet][value]++
			}
		}
	}
	return out
}
