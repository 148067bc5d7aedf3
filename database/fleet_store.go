// database/fleet_store.go
package database

import (
	"database/sql"
	"fmt"

	"github.com/adnansk/wheels-backend/models"
	log "github.com/sirupsen/logrus"
)

// SaveVehicles replaces the mirrored Vehicles tab with a fresh snapshot.
// Uses a "clear and load" strategy per sourceFile, same as every other sheet
// mirror table.
func SaveVehicles(vehicles []models.Vehicle, sourceFile string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if len(vehicles) == 0 {
		log.Println("No vehicles provided to save.")
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for vehicles: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM vehicles WHERE source_file = ?", sourceFile); err != nil {
		return fmt.Errorf("failed to delete old vehicles for source %s: %w", sourceFile, err)
	}
	log.Printf("Cleared existing vehicles for source: %s", sourceFile)

	stmt, err := tx.Prepare(`
		INSERT INTO vehicles (
			vehicle_id, make, vehicle_name, category, class, fuel_type,
			drivetrain, gearbox, number_of_gears, turbo, colors, owners,
			rc_owner, registration_number, displacement, cylinders, power,
			torque, fuel_economy, boot_space, seating_capacity, model_year,
			facelift_year, registration_year, owning_date,
			current_odometer, odometer_updated_date, source_file, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare vehicle insert statement: %w", err)
	}
	defer stmt.Close()

	for _, v := range vehicles {
		_, err := stmt.Exec(
			v.VehicleID, v.Make, v.VehicleName, v.Category, v.Class, v.FuelType,
			v.Drivetrain, v.Gearbox, v.NumberOfGears, v.Turbo, v.Colors, v.Owners,
			v.RcOwner, v.RegistrationNumber, v.Displacement, v.Cylinders, v.Power,
			v.Torque, v.FuelEconomy, v.BootSpace, v.SeatingCapacity, v.ModelYear,
			v.FaceliftYear, v.RegistrationYear, v.OwningDate,
			v.CurrentOdometer, v.OdometerUpdatedDate, sourceFile,
		)
		if err != nil {
			log.Printf("ERROR saving vehicle: %+v, Error: %v", v, err)
			return fmt.Errorf("failed to execute vehicle insert for vehicleID '%s': %w", v.VehicleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for vehicles: %w", err)
	}

	log.Printf("Successfully saved %d vehicles from source: %s", len(vehicles), sourceFile)
	return nil
}

const vehicleColumns = `
	id, vehicle_id, make, vehicle_name, category, class, fuel_type,
	drivetrain, gearbox, number_of_gears, turbo, colors, owners,
	rc_owner, registration_number, displacement, cylinders, power,
	torque, fuel_economy, boot_space, seating_capacity, model_year,
	facelift_year, registration_year, owning_date,
	current_odometer, odometer_updated_date, created_at, updated_at`

func scanVehicle(rows interface{ Scan(...any) error }) (models.Vehicle, error) {
	var v models.Vehicle
	err := rows.Scan(
		&v.ID, &v.VehicleID, &v.Make, &v.VehicleName, &v.Category, &v.Class, &v.FuelType,
		&v.Drivetrain, &v.Gearbox, &v.NumberOfGears, &v.Turbo, &v.Colors, &v.Owners,
		&v.RcOwner, &v.RegistrationNumber, &v.Displacement, &v.Cylinders, &v.Power,
		&v.Torque, &v.FuelEconomy, &v.BootSpace, &v.SeatingCapacity, &v.ModelYear,
		&v.FaceliftYear, &v.RegistrationYear, &v.OwningDate,
		&v.CurrentOdometer, &v.OdometerUpdatedDate, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

// GetAllVehicles returns the full mirrored fleet.
func GetAllVehicles() ([]models.Vehicle, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	rows, err := DB.Query("SELECT" + vehicleColumns + " FROM vehicles ORDER BY make, vehicle_name")
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			log.Printf("ERROR: Failed to scan vehicle row: %v", err)
			continue
		}
		vehicles = append(vehicles, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicle rows: %w", err)
	}
	return vehicles, nil
}

// GetVehicleByID fetches one vehicle by its sheet key. Returns (nil, nil) when
// no such vehicle exists — "not found" is a result, not an error.
func GetVehicleByID(vehicleID string) (*models.Vehicle, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	row := DB.QueryRow("SELECT"+vehicleColumns+" FROM vehicles WHERE vehicle_id = ?", vehicleID)
	v, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicle %s: %w", vehicleID, err)
	}
	return &v, nil
}

// UpdateVehicleOdometer mirrors the gateway's in-place odometer update into
// the local cache so the next read reflects it without a full resync.
func UpdateVehicleOdometer(vehicleID, odometer, dateStr string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	res, err := DB.Exec(
		"UPDATE vehicles SET current_odometer = ?, odometer_updated_date = ?, updated_at = NOW() WHERE vehicle_id = ?",
		odometer, dateStr, vehicleID,
	)
	if err != nil {
		return fmt.Errorf("failed to update odometer for vehicle %s: %w", vehicleID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		log.Printf("WARN: Odometer update touched no rows for vehicle %s (not in cache yet?).", vehicleID)
	}
	return nil
}
