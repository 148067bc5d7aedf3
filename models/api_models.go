// models/api_models.go
package models

// FleetQueryRequest is the JSON body for /api/fleet/query.
// Empty facet slices mean "facet inactive, match all".
type FleetQueryRequest struct {
	Filters  FilterCriteria `json:"filters"`
	Search   string         `json:"search"`
	SortBy   string         `json:"sortBy"`   // sortable numeric field or ""
	GroupBy  string         `json:"groupBy"`  // "none", "owners" or a vehicle field
	Identity string         `json:"identity"` // current user name, for owners grouping
}

// FilterCriteria is the active facet selection. colors and owners are
// multi-valued on the vehicle side (comma-separated cells) and match on
// set intersection; the rest match exactly.
type FilterCriteria struct {
	Make       []string `json:"make"`
	Category   []string `json:"category"`
	Class      []string `json:"class"`
	FuelType   []string `json:"fuelType"`
	Drivetrain []string `json:"drivetrain"`
	Gearbox    []string `json:"gearbox"`
	Colors     []string `json:"colors"`
	Owners     []string `json:"owners"`
	RcOwner    []string `json:"rcOwner"`
}

// Empty reports whether no facet is active.
func (c FilterCriteria) Empty() bool {
	return len(c.Make) == 0 && len(c.Category) == 0 && len(c.Class) == 0 &&
		len(c.FuelType) == 0 && len(c.Drivetrain) == 0 && len(c.Gearbox) == 0 &&
		len(c.Colors) == 0 && len(c.Owners) == 0 && len(c.RcOwner) == 0
}

// MaintenanceEntryRequest is the JSON body for /api/records/maintenance —
// one workshop visit with one or more service rows, forwarded row by row to
// the sheet macro.
type MaintenanceEntryRequest struct {
	VehicleID     string               `json:"vehicleID"`
	Date          string               `json:"date"` // YYYY-MM-DD
	Odometer      string               `json:"odometer"`
	Workshop      string               `json:"workshop"`
	LabourCharges string               `json:"labourCharges"`
	Items         []MaintenanceItemRow `json:"items"`
}

// MaintenanceItemRow is a single service line inside a visit.
type MaintenanceItemRow struct {
	ServiceType string `json:"serviceType"`
	Action      string `json:"action"` // Replaced / Checked / Serviced / Cleaned
	Cost        string `json:"cost"`
	Notes       string `json:"notes"`
}

// DocumentEntryRequest is the JSON body for /api/records/document.
type DocumentEntryRequest struct {
	VehicleID    string `json:"vehicleID"`
	DocumentType string `json:"documentType"`
	IssueDate    string `json:"issueDate"`
	ExpiryDate   string `json:"expiryDate"`
	Notes        string `json:"notes"`
}

// OdometerUpdateRequest is the JSON body for /api/records/odometer.
type OdometerUpdateRequest struct {
	VehicleID string `json:"vehicleID"`
	Odometer  string `json:"odometer"`
}

// FixIssueRequest is the JSON body for /api/records/fix-issue. The sheet macro
// matches the issue by its text, so the text travels verbatim.
type FixIssueRequest struct {
	VehicleID string `json:"vehicleID"`
	Issue     string `json:"issue"`
}
