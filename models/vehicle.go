// models/vehicle.go
package models

import (
	"time"

	"github.com/adnansk/wheels-backend/utils"
)

// Vehicle is one row of the Vehicles sheet.
// CSV tags match the sheet headers exactly; numeric-looking columns stay raw
// strings because the sheet does not guarantee they parse — use the typed
// accessors below.
type Vehicle struct {
	ID int64 `db:"id" json:"-"` // database primary key, not from CSV

	VehicleID          string `csv:"vehicleID" db:"vehicle_id" json:"vehicleID"`
	Make               string `csv:"make" db:"make" json:"make"`
	VehicleName        string `csv:"vehicleName" db:"vehicle_name" json:"vehicleName"`
	Category           string `csv:"category" db:"category" json:"category"`
	Class              string `csv:"class" db:"class" json:"class"`
	FuelType           string `csv:"fuelType" db:"fuel_type" json:"fuelType"`
	Drivetrain         string `csv:"drivetrain" db:"drivetrain" json:"drivetrain"`
	Gearbox            string `csv:"gearbox" db:"gearbox" json:"gearbox"`
	NumberOfGears      string `csv:"numberOfGears" db:"number_of_gears" json:"numberOfGears"`
	Turbo              string `csv:"turbo" db:"turbo" json:"turbo"`
	Colors             string `csv:"colors" db:"colors" json:"colors"`   // comma-separated
	Owners             string `csv:"owners" db:"owners" json:"owners"`   // comma-separated names
	RcOwner            string `csv:"rcOwner" db:"rc_owner" json:"rcOwner"`
	RegistrationNumber string `csv:"registrationNumber" db:"registration_number" json:"registrationNumber"`

	Displacement     string `csv:"displacement" db:"displacement" json:"displacement"`
	Cylinders        string `csv:"cylinders" db:"cylinders" json:"cylinders"`
	Power            string `csv:"power" db:"power" json:"power"`
	Torque           string `csv:"torque" db:"torque" json:"torque"`
	FuelEconomy      string `csv:"fuelEconomy" db:"fuel_economy" json:"fuelEconomy"`
	BootSpace        string `csv:"bootSpace" db:"boot_space" json:"bootSpace"`
	SeatingCapacity  string `csv:"seatingCapacity" db:"seating_capacity" json:"seatingCapacity"`
	ModelYear        string `csv:"modelYear" db:"model_year" json:"modelYear"`
	FaceliftYear     string `csv:"faceliftYear" db:"facelift_year" json:"faceliftYear"`
	RegistrationYear string `csv:"registrationYear" db:"registration_year" json:"registrationYear"`
	OwningDate       string `csv:"owningDate" db:"owning_date" json:"owningDate"`

	// CurrentOdometer may be blank; the latest maintenance record's odometer
	// is the fallback (see services.CurrentOdometerKM).
	CurrentOdometer     string `csv:"CurrentOdometer" db:"current_odometer" json:"CurrentOdometer"`
	OdometerUpdatedDate string `csv:"OdometerUpdatedDate" db:"odometer_updated_date" json:"OdometerUpdatedDate"`

	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// DisplayName is the "Make VehicleName" label used across every view.
func (v *Vehicle) DisplayName() string {
	if v.Make == "" {
		return v.VehicleName
	}
	return v.Make + " " + v.VehicleName
}

// OdometerKM returns the CurrentOdometer cell if it parses.
func (v *Vehicle) OdometerKM() (int, bool) {
	return ParseIntCell(v.CurrentOdometer)
}

// ColorList returns the parsed colors set.
func (v *Vehicle) ColorList() []string {
	return utils.SplitList(v.Colors)
}

// OwnerList returns the parsed owner names.
func (v *Vehicle) OwnerList() []string {
	return utils.SplitList(v.Owners)
}

// OwnedBy reports whether the given identity appears in the owner list
// (trimmed, case-insensitive).
func (v *Vehicle) OwnedBy(identity string) bool {
	if identity == "" {
		return false
	}
	return utils.ContainsName(v.OwnerList(), identity)
}

// sortableFields maps the sort keys the front-end offers to vehicle cells.
var sortableFields = map[string]func(*Vehicle) string{
	"modelYear":        func(v *Vehicle) string { return v.ModelYear },
	"registrationYear": func(v *Vehicle) string { return v.RegistrationYear },
	"displacement":     func(v *Vehicle) string { return v.Displacement },
	"power":            func(v *Vehicle) string { return v.Power },
	"torque":           func(v *Vehicle) string { return v.Torque },
	"fuelEconomy":      func(v *Vehicle) string { return v.FuelEconomy },
	"seatingCapacity":  func(v *Vehicle) string { return v.SeatingCapacity },
	"bootSpace":        func(v *Vehicle) string { return v.BootSpace },
}

// SortValue returns the numeric value of a sortable field; missing or
// unparseable cells sort as 0, matching the original parseFloat(...) || 0.
func (v *Vehicle) SortValue(field string) float64 {
	get, ok := sortableFields[field]
	if !ok {
		return 0
	}
	val, ok := ParseFloatCell(get(v))
	if !ok {
		return 0
	}
	return val
}

// SortableField reports whether field is one the pipeline can sort by.
func SortableField(field string) bool {
	_, ok := sortableFields[field]
	return ok
}

// FieldValue returns the raw cell for the group-by keys (category, class, ...).
// Unknown keys return "".
func (v *Vehicle) FieldValue(field string) string {
	switch field {
	case "make":
		return v.Make
	case "category":
		return v.Category
	case "class":
		return v.Class
	case "fuelType":
		return v.FuelType
	case "drivetrain":
		return v.Drivetrain
	case "gearbox":
		return v.Gearbox
	case "rcOwner":
		return v.RcOwner
	case "colors":
		return v.Colors
	case "owners":
		return v.Owners
	case "modelYear":
		return v.ModelYear
	case "registrationYear":
		return v.RegistrationYear
	}
	return ""
}
