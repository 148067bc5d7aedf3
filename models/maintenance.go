// models/maintenance.go
package models

import "time"

// ServiceInterval is one row of the ServiceIntervals sheet: a per-vehicle,
// per-component recurrence rule. Any of the three interval cells may be blank;
// at least one must parse for the interval to be actionable.
type ServiceInterval struct {
	ID int64 `db:"id" json:"-"`

	VehicleID    string `csv:"vehicleID" db:"vehicle_id" json:"vehicleID"`
	Component    string `csv:"component" db:"component" json:"component"`
	ReplaceKM    string `csv:"replaceKM" db:"replace_km" json:"replaceKM"`
	InspectionKM string `csv:"inspectionKM" db:"inspection_km" json:"inspectionKM"`
	IntervalDays string `csv:"intervalDays" db:"interval_days" json:"intervalDays"`

	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

func (s *ServiceInterval) ReplaceKMValue() (int, bool)    { return ParseIntCell(s.ReplaceKM) }
func (s *ServiceInterval) InspectionKMValue() (int, bool) { return ParseIntCell(s.InspectionKM) }
func (s *ServiceInterval) IntervalDaysValue() (int, bool) { return ParseIntCell(s.IntervalDays) }

// Actionable reports whether at least one recurrence cell parses.
func (s *ServiceInterval) Actionable() bool {
	if _, ok := s.ReplaceKMValue(); ok {
		return true
	}
	if _, ok := s.InspectionKMValue(); ok {
		return true
	}
	_, ok := s.IntervalDaysValue()
	return ok
}

// MaintenanceRecord is one row of the MaintenanceRecords sheet: a single
// logged service action for one component.
type MaintenanceRecord struct {
	ID int64 `db:"id" json:"-"`

	VehicleID   string `csv:"vehicleID" db:"vehicle_id" json:"vehicleID"`
	Date        string `csv:"date" db:"service_date" json:"date"`
	Odometer    string `csv:"odometer" db:"odometer" json:"odometer"`
	ServiceType string `csv:"serviceType" db:"service_type" json:"serviceType"`
	Action      string `csv:"action" db:"action" json:"action"` // Replaced / Checked / Serviced / Cleaned
	Cost        string `csv:"cost" db:"cost" json:"cost"`
	Notes       string `csv:"notes" db:"notes" json:"notes"`
	Workshop    string `csv:"workshop" db:"workshop" json:"workshop"`

	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

func (m *MaintenanceRecord) ServiceDate() (time.Time, bool) { return ParseDateCell(m.Date) }
func (m *MaintenanceRecord) OdometerValue() (int, bool)     { return ParseIntCell(m.Odometer) }
func (m *MaintenanceRecord) CostValue() (float64, bool)     { return ParseFloatCell(m.Cost) }

// LatestRecordFor scans history for the most recent record of one component
// by service date. Records with unparseable dates are ignored. Ties on the
// same date keep the record that appears last in input order.
func LatestRecordFor(history []MaintenanceRecord, vehicleID, component string) *MaintenanceRecord {
	var latest *MaintenanceRecord
	var latestDate time.Time
	for i := range history {
		rec := &history[i]
		if rec.VehicleID != vehicleID || rec.ServiceType != component {
			continue
		}
		d, ok := rec.ServiceDate()
		if !ok {
			continue
		}
		if latest == nil || !d.Before(latestDate) {
			latest = rec
			latestDate = d
		}
	}
	return latest
}

// LatestRecord returns the most recent maintenance record for a vehicle across
// all components — the odometer fallback source.
func LatestRecord(history []MaintenanceRecord, vehicleID string) *MaintenanceRecord {
	var latest *MaintenanceRecord
	var latestDate time.Time
	for i := range history {
		rec := &history[i]
		if rec.VehicleID != vehicleID {
			continue
		}
		d, ok := rec.ServiceDate()
		if !ok {
			continue
		}
		if latest == nil || !d.Before(latestDate) {
			latest = rec
			latestDate = d
		}
	}
	return latest
}
