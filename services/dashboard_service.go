// services/dashboard_service.go
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/adnansk/wheels-backend/database"
	"github.com/adnansk/wheels-backend/models"
	"github.com/adnansk/wheels-backend/utils"
	log "github.com/sirupsen/logrus"
)

// VehicleCard is one fleet-list entry: the vehicle plus the badges the cards
// render.
type VehicleCard struct {
	models.Vehicle
	DisplayName     string             `json:"displayName"`
	MaintenanceTier models.UrgencyTier `json:"maintenanceTier"`
	NoIntervals     bool               `json:"noIntervals"`
	DocumentAlert   bool               `json:"documentAlert"` // any expired or expiring document
	OpenIssues      int                `json:"openIssues"`
}

// CardGroup is one named partition of the fleet list, with cards.
type CardGroup struct {
	Name     string        `json:"name"`
	Vehicles []VehicleCard `json:"vehicles"`
}

// FleetQueryResult is the /api/fleet/query response body.
type FleetQueryResult struct {
	Total   int         `json:"total"`   // vehicles in the fleet
	Matched int         `json:"matched"` // vehicles after filtering
	Groups  []CardGroup `json:"groups"`
}

// QueryFleet runs the filter/sort/group pipeline over the mirrored fleet and
// decorates each vehicle with its maintenance badge, document alert and open
// issue count.
func QueryFleet(req models.FleetQueryRequest) (*FleetQueryResult, error) {
	log.Printf("Service: Fleet query (search=%q, sortBy=%q, groupBy=%q)...", req.Search, req.SortBy, req.GroupBy)

	data, err := LoadFleetSnapshot()
	if err != nil {
		return nil, err
	}
	today := time.Now()

	filtered := ApplyFilters(data.Vehicles, req.Filters, req.Search)
	sorted := ApplySort(filtered, req.SortBy)
	groups := GroupVehicles(sorted, req.GroupBy, req.Identity)

	docStatuses := ComputeDocumentStatus(data.Documents, today)
	docAlerts := make(map[string]bool)
	for _, s := range docStatuses {
		if s.Tier != models.DocOK {
			docAlerts[s.VehicleID] = true
		}
	}

	openIssues := make(map[string]int)
	for i := range data.Issues {
		if data.Issues[i].Open() {
			openIssues[data.Issues[i].VehicleID]++
		}
	}

	result := &FleetQueryResult{
		Total:   len(data.Vehicles),
		Matched: len(filtered),
	}
	for _, g := range groups {
		cards := make([]VehicleCard, 0, len(g.Vehicles))
		for i := range g.Vehicles {
			v := g.Vehicles[i]
			status := ComputeDueStatus(&v, data.Intervals, data.Maintenance, today)
			cards = append(cards, VehicleCard{
				Vehicle:         v,
				DisplayName:     v.DisplayName(),
				MaintenanceTier: status.Tier,
				NoIntervals:     status.NoIntervals,
				DocumentAlert:   docAlerts[v.VehicleID],
				OpenIssues:      openIssues[v.VehicleID],
			})
		}
		result.Groups = append(result.Groups, CardGroup{Name: g.Name, Vehicles: cards})
	}
	return result, nil
}

// FleetFacets returns the filter checkbox data: every facet value with its
// vehicle count.
func FleetFacets() (map[string]map[string]int, error) {
	vehicles, err := database.GetAllVehicles()
	if err != nil {
		return nil, err
	}
	return FacetCounts(vehicles), nil
}

// VehicleDetail is the /api/vehicles response body.
type VehicleDetail struct {
	Vehicle         *models.Vehicle         `json:"vehicle"`
	DisplayName     string                  `json:"displayName"`
	OdometerKM      *int                    `json:"odometerKM,omitempty"`
	OdometerDisplay string                  `json:"odometerDisplay,omitempty"` // 6-digit dial string
	DueStatus       models.VehicleDueStatus `json:"dueStatus"`
	Documents       []models.DocumentStatus `json:"documents"`
	OpenIssues      []models.IssueReport    `json:"openIssues"`
	History         []models.HistoryRollup  `json:"history"`
}

// GetVehicleDetail assembles the single-vehicle view. Returns (nil, nil) when
// the vehicle does not exist.
func GetVehicleDetail(vehicleID string) (*VehicleDetail, error) {
	log.Printf("Service: Loading detail for vehicle %s...", vehicleID)

	vehicle, err := database.GetVehicleByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, nil
	}

	intervals, err := database.GetServiceIntervalsForVehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	history, err := database.GetMaintenanceForVehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	documents, err := database.GetDocumentsForVehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	issues, err := database.GetIssuesForVehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	detail := &VehicleDetail{
		Vehicle:     vehicle,
		DisplayName: vehicle.DisplayName(),
		DueStatus:   ComputeDueStatus(vehicle, intervals, history, today),
		Documents:   ComputeDocumentStatus(documents, today),
		History:     RollupHistory(history),
	}

	if km, ok := CurrentOdometerKM(vehicle, history); ok {
		detail.OdometerKM = &km
		detail.OdometerDisplay = utils.PadOdometer(km)
	}

	for i := range issues {
		if issues[i].Open() {
			detail.OpenIssues = append(detail.OpenIssues, issues[i])
		}
	}
	// Newest report first.
	sort.SliceStable(detail.OpenIssues, func(i, j int) bool {
		di, iOK := detail.OpenIssues[i].ReportDate()
		dj, jOK := detail.OpenIssues[j].ReportDate()
		if iOK && jOK {
			return di.After(dj)
		}
		return iOK && !jOK
	})

	return detail, nil
}

// DueServiceRow is one vehicle's entry in the due-services table.
type DueServiceRow struct {
	VehicleID   string                 `json:"vehicleID"`
	DisplayName string                 `json:"displayName"`
	Tier        models.UrgencyTier     `json:"tier"`
	Earliest    *models.DueProjection  `json:"earliest,omitempty"`
	Projections []models.DueProjection `json:"projections"`
}

// DueServicesReport builds the due-services dashboard: one row per vehicle
// that has at least one projection, most urgent tiers first.
func DueServicesReport() ([]DueServiceRow, error) {
	log.Println("Service: Building due-services report...")

	data, err := LoadFleetSnapshot()
	if err != nil {
		return nil, err
	}
	today := time.Now()

	var rows []DueServiceRow
	for i := range data.Vehicles {
		v := &data.Vehicles[i]
		status := ComputeDueStatus(v, data.Intervals, data.Maintenance, today)
		if len(status.Projections) == 0 {
			continue
		}
		row := DueServiceRow{
			VehicleID:   v.VehicleID,
			DisplayName: v.DisplayName(),
			Tier:        status.Tier,
			Projections: status.Projections,
		}
		// Projections are already ranked; the first is the nearest due point.
		row.Earliest = &status.Projections[0]
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return tierRank(rows[i].Tier) < tierRank(rows[j].Tier)
	})
	return rows, nil
}

func tierRank(t models.UrgencyTier) int {
	switch t {
	case models.TierOverdue:
		return 0
	case models.TierUpcoming:
		return 1
	}
	return 2
}

// ExpiringDocumentRow is one entry of the expiring-documents dashboard.
type ExpiringDocumentRow struct {
	models.DocumentStatus
	DisplayName   string `json:"displayName"`
	RemainingText string `json:"remainingText"`
}

// ExpiringDocumentsReport lists every expired or expiring document across the
// fleet, most urgent first, with display names resolved.
func ExpiringDocumentsReport() ([]ExpiringDocumentRow, error) {
	log.Println("Service: Building expiring-documents report...")

	data, err := LoadFleetSnapshot()
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(data.Vehicles))
	for i := range data.Vehicles {
		names[data.Vehicles[i].VehicleID] = data.Vehicles[i].DisplayName()
	}

	statuses := ExpiringDocuments(ComputeDocumentStatus(data.Documents, time.Now()))
	rows := make([]ExpiringDocumentRow, 0, len(statuses))
	for _, s := range statuses {
		name := names[s.VehicleID]
		if name == "" {
			name = s.VehicleID
		}
		rows = append(rows, ExpiringDocumentRow{
			DocumentStatus: s,
			DisplayName:    name,
			RemainingText:  FormatRemainingTime(s.RemainingDays),
		})
	}
	return rows, nil
}

// SnapshotStatus lists every tab's freshness record for the admin endpoint.
func SnapshotStatus() ([]models.SheetSnapshotVersion, error) {
	versions, err := database.GetAllSheetSnapshotVersions()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot status: %w", err)
	}
	return versions, nil
}
