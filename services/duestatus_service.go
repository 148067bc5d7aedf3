// services/duestatus_service.go
package services

import (
	"sort"
	"time"

	"github.com/adnansk/wheels-backend/config"
	"github.com/adnansk/wheels-backend/models"
)

// The due-status engine projects each vehicle's next service points from its
// interval rules and logged history. A component only projects when it has at
// least one dated record: an interval with no history has no anchor to count
// from, so it stays invisible rather than showing a bogus due point.

// CurrentOdometerKM returns the vehicle's current odometer reading: the
// CurrentOdometer cell if it parses, otherwise the odometer of the latest
// maintenance record.
func CurrentOdometerKM(vehicle *models.Vehicle, history []models.MaintenanceRecord) (int, bool) {
	if km, ok := vehicle.OdometerKM(); ok {
		return km, true
	}
	if rec := models.LatestRecord(history, vehicle.VehicleID); rec != nil {
		if km, ok := rec.OdometerValue(); ok {
			return km, true
		}
	}
	return 0, false
}

// ComputeDueStatus projects every component of one vehicle and rolls the
// component tiers up to a vehicle tier.
func ComputeDueStatus(vehicle *models.Vehicle, intervals []models.ServiceInterval,
	history []models.MaintenanceRecord, today time.Time) models.VehicleDueStatus {

	status := models.VehicleDueStatus{
		VehicleID: vehicle.VehicleID,
		Tier:      models.TierNormal,
	}

	currentKM, haveKM := CurrentOdometerKM(vehicle, history)

	actionable := 0
	for i := range intervals {
		iv := &intervals[i]
		if iv.VehicleID != vehicle.VehicleID || !iv.Actionable() {
			continue
		}
		actionable++

		proj, ok := projectComponent(iv, history, currentKM, haveKM, today)
		if !ok {
			continue
		}
		status.Projections = append(status.Projections, proj)
		status.Tier = status.Tier.Worse(proj.Tier)
	}

	status.NoIntervals = actionable == 0
	RankProjections(status.Projections)
	return status
}

// projectComponent computes the due point for one interval rule. Returns
// ok=false when the component has no dated history record to anchor on.
func projectComponent(iv *models.ServiceInterval, history []models.MaintenanceRecord,
	currentKM int, haveKM bool, today time.Time) (models.DueProjection, bool) {

	last := models.LatestRecordFor(history, iv.VehicleID, iv.Component)
	if last == nil {
		return models.DueProjection{}, false
	}

	proj := models.DueProjection{
		Component: iv.Component,
		Tier:      models.TierNormal,
	}

	if d, ok := last.ServiceDate(); ok {
		lastDate := d
		proj.LastDate = &lastDate
	}
	lastOdo, haveLastOdo := last.OdometerValue()
	if haveLastOdo {
		odo := lastOdo
		proj.LastOdometer = &odo
	}

	// Distance axis: replace and inspection distances both project from the
	// last odometer; the nearer one wins and names the action. On a tie
	// Replace wins.
	if haveLastOdo {
		replaceKM, haveReplace := iv.ReplaceKMValue()
		inspectKM, haveInspect := iv.InspectionKMValue()
		switch {
		case haveReplace && haveInspect:
			replaceDue := lastOdo + replaceKM
			inspectDue := lastOdo + inspectKM
			if replaceDue <= inspectDue {
				proj.DueKM = &replaceDue
				proj.Label = models.LabelReplace
			} else {
				proj.DueKM = &inspectDue
				proj.Label = models.LabelCheck
			}
		case haveReplace:
			due := lastOdo + replaceKM
			proj.DueKM = &due
			proj.Label = models.LabelReplace
		case haveInspect:
			due := lastOdo + inspectKM
			proj.DueKM = &due
			proj.Label = models.LabelCheck
		}
	}

	// Time axis: interval days project from the last service date.
	if days, ok := iv.IntervalDaysValue(); ok && proj.LastDate != nil {
		dueDate := proj.LastDate.AddDate(0, 0, days)
		proj.DueDate = &dueDate
	}

	if proj.DueKM != nil && haveKM {
		rem := *proj.DueKM - currentKM
		proj.RemainingKM = &rem
	}
	if proj.DueDate != nil {
		rem := models.DaysUntil(today, *proj.DueDate)
		proj.RemainingDays = &rem
	}

	proj.Tier = projectionTier(proj.RemainingKM, proj.RemainingDays)
	return proj, true
}

// projectionTier classifies a projection: overdue when either axis has run
// out, upcoming when either axis is inside the alert window.
func projectionTier(remainingKM, remainingDays *int) models.UrgencyTier {
	if (remainingKM != nil && *remainingKM <= 0) ||
		(remainingDays != nil && *remainingDays <= 0) {
		return models.TierOverdue
	}
	if (remainingKM != nil && *remainingKM <= config.AppConfig.Alerts.UpcomingKM) ||
		(remainingDays != nil && *remainingDays <= config.AppConfig.Alerts.UpcomingDays) {
		return models.TierUpcoming
	}
	return models.TierNormal
}

// MaintenanceTier is the fast badge path for fleet cards: same projection math
// as ComputeDueStatus but stops at the first overdue component.
func MaintenanceTier(vehicle *models.Vehicle, intervals []models.ServiceInterval,
	history []models.MaintenanceRecord, today time.Time) models.UrgencyTier {

	currentKM, haveKM := CurrentOdometerKM(vehicle, history)

	tier := models.TierNormal
	for i := range intervals {
		iv := &intervals[i]
		if iv.VehicleID != vehicle.VehicleID || !iv.Actionable() {
			continue
		}
		proj, ok := projectComponent(iv, history, currentKM, haveKM, today)
		if !ok {
			continue
		}
		tier = tier.Worse(proj.Tier)
		if tier == models.TierOverdue {
			return tier
		}
	}
	return tier
}

// RankProjections orders projections by nearest due date, then nearest due
// distance. An absent value sorts after any present value, and a projection
// with neither sorts last. The sort is stable so equal keys keep input order.
func RankProjections(projs []models.DueProjection) {
	sort.SliceStable(projs, func(i, j int) bool {
		a, b := &projs[i], &projs[j]
		if c := compareNilLast(timePtrMillis(a.DueDate), timePtrMillis(b.DueDate)); c != 0 {
			return c < 0
		}
		if c := compareNilLast(intPtr64(a.DueKM), intPtr64(b.DueKM)); c != 0 {
			return c < 0
		}
		return false
	})
}

func timePtrMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func intPtr64(v *int) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}

// compareNilLast compares two optional values with nil ordered after any
// value.
func compareNilLast(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

// RollupHistory groups one vehicle's maintenance records by odometer reading
// into visits, summing costs, newest visit first. Records whose odometer cell
// is blank still group together under the blank key.
func RollupHistory(history []models.MaintenanceRecord) []models.HistoryRollup {
	var rollups []models.HistoryRollup
	index := make(map[string]int)

	for i := range history {
		rec := &history[i]
		idx, seen := index[rec.Odometer]
		if !seen {
			rollups = append(rollups, models.HistoryRollup{
				Odometer: rec.Odometer,
				Date:     rec.Date,
			})
			idx = len(rollups) - 1
			index[rec.Odometer] = idx
		}
		rollups[idx].Items++
		if cost, ok := rec.CostValue(); ok {
			rollups[idx].TotalCost += cost
		}
		// A visit shows its latest date when records disagree.
		if d, ok := rec.ServiceDate(); ok {
			if cur, curOK := models.ParseDateCell(rollups[idx].Date); !curOK || d.After(cur) {
				rollups[idx].Date = rec.Date
			}
		}
	}

	// Newest first: descending by date, undatable visits last.
	sort.SliceStable(rollups, func(i, j int) bool {
		di, iOK := models.ParseDateCell(rollups[i].Date)
		dj, jOK := models.ParseDateCell(rollups[j].Date)
		if iOK && jOK {
			return di.After(dj)
		}
		return iOK && !jOK
	})
	return rollups
}
