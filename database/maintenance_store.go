// database/maintenance_store.go
package database

import (
	"fmt"

	"github.com/adnansk/wheels-backend/models"
	log "github.com/sirupsen/logrus"
)

// SaveServiceIntervals replaces the mirrored ServiceIntervals tab.
func SaveServiceIntervals(intervals []models.ServiceInterval, sourceFile string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if len(intervals) == 0 {
		log.Println("No service intervals provided to save.")
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for service intervals: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM service_intervals WHERE source_file = ?", sourceFile); err != nil {
		return fmt.Errorf("failed to delete old service intervals for source %s: %w", sourceFile, err)
	}
	log.Printf("Cleared existing service intervals for source: %s", sourceFile)

	stmt, err := tx.Prepare(`
		INSERT INTO service_intervals (
			vehicle_id, component, replace_km, inspection_km, interval_days,
			source_file, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, NOW())
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare service interval insert statement: %w", err)
	}
	defer stmt.Close()

	for _, iv := range intervals {
		_, err := stmt.Exec(
			iv.VehicleID, iv.Component, iv.ReplaceKM, iv.InspectionKM, iv.IntervalDays,
			sourceFile,
		)
		if err != nil {
			log.Printf("ERROR saving service interval: %+v, Error: %v", iv, err)
			return fmt.Errorf("failed to execute service interval insert for vehicle '%s', component '%s': %w",
				iv.VehicleID, iv.Component, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for service intervals: %w", err)
	}

	log.Printf("Successfully saved %d service intervals from source: %s", len(intervals), sourceFile)
	return nil
}

// SaveMaintenanceRecords replaces the mirrored MaintenanceRecords tab.
func SaveMaintenanceRecords(records []models.MaintenanceRecord, sourceFile string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if len(records) == 0 {
		log.Println("No maintenance records provided to save.")
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for maintenance records: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM maintenance_records WHERE source_file = ?", sourceFile); err != nil {
		return fmt.Errorf("failed to delete old maintenance records for source %s: %w", sourceFile, err)
	}
	log.Printf("Cleared existing maintenance records for source: %s", sourceFile)

	stmt, err := tx.Prepare(`
		INSERT INTO maintenance_records (
			vehicle_id, service_date, odometer, service_type, action, cost,
			notes, workshop, source_file, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare maintenance record insert statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.Exec(
			rec.VehicleID, rec.Date, rec.Odometer, rec.ServiceType, rec.Action, rec.Cost,
			rec.Notes, rec.Workshop, sourceFile,
		)
		if err != nil {
			log.Printf("ERROR saving maintenance record: %+v, Error: %v", rec, err)
			return fmt.Errorf("failed to execute maintenance insert for vehicle '%s', serviceType '%s': %w",
				rec.VehicleID, rec.ServiceType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for maintenance records: %w", err)
	}

	log.Printf("Successfully saved %d maintenance records from source: %s", len(records), sourceFile)
	return nil
}

const intervalColumns = `
	id, vehicle_id, component, replace_km, inspection_km, interval_days, created_at, updated_at`

const maintenanceColumns = `
	id, vehicle_id, service_date, odometer, service_type, action, cost,
	notes, workshop, created_at, updated_at`

// GetAllServiceIntervals returns every interval rule, for the due-service dashboard.
func GetAllServiceIntervals() ([]models.ServiceInterval, error) {
	return queryServiceIntervals("SELECT"+intervalColumns+" FROM service_intervals ORDER BY vehicle_id, component", nil)
}

// GetServiceIntervalsForVehicle returns a vehicle's interval rules.
func GetServiceIntervalsForVehicle(vehicleID string) ([]models.ServiceInterval, error) {
	return queryServiceIntervals(
		"SELECT"+intervalColumns+" FROM service_intervals WHERE vehicle_id = ? ORDER BY component",
		[]any{vehicleID},
	)
}

func queryServiceIntervals(query string, args []any) ([]models.ServiceInterval, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query service intervals: %w", err)
	}
	defer rows.Close()

	var intervals []models.ServiceInterval
	for rows.Next() {
		var iv models.ServiceInterval
		err := rows.Scan(
			&iv.ID, &iv.VehicleID, &iv.Component, &iv.ReplaceKM, &iv.InspectionKM,
			&iv.IntervalDays, &iv.CreatedAt, &iv.UpdatedAt,
		)
		if err != nil {
			log.Printf("ERROR: Failed to scan service interval row: %v", err)
			continue
		}
		intervals = append(intervals, iv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service interval rows: %w", err)
	}
	return intervals, nil
}

// GetAllMaintenanceRecords returns the full maintenance history for the
// dashboards.
func GetAllMaintenanceRecords() ([]models.MaintenanceRecord, error) {
	return queryMaintenance("SELECT"+maintenanceColumns+" FROM maintenance_records ORDER BY vehicle_id, service_date", nil)
}

// GetMaintenanceForVehicle returns one vehicle's maintenance history.
func GetMaintenanceForVehicle(vehicleID string) ([]models.MaintenanceRecord, error) {
	return queryMaintenance(
		"SELECT"+maintenanceColumns+" FROM maintenance_records WHERE vehicle_id = ? ORDER BY service_date",
		[]any{vehicleID},
	)
}

func queryMaintenance(query string, args []any) ([]models.MaintenanceRecord, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query maintenance records: %w", err)
	}
	defer rows.Close()

	var records []models.MaintenanceRecord
	for rows.Next() {
		var rec models.MaintenanceRecord
		err := rows.Scan(
			&rec.ID, &rec.VehicleID, &rec.Date, &rec.Odometer, &rec.ServiceType,
			&rec.Action, &rec.Cost, &rec.Notes, &rec.Workshop, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			log.Printf("ERROR: Failed to scan maintenance record row: %v", err)
			continue
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating maintenance record rows: %w", err)
	}
	return records, nil
}

// AppendMaintenanceRecord mirrors one gateway-submitted service row into the
// cache so dashboards update without waiting for the next sheet sync.
func AppendMaintenanceRecord(rec models.MaintenanceRecord, sourceFile string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	_, err := DB.Exec(`
		INSERT INTO maintenance_records (
			vehicle_id, service_date, odometer, service_type, action, cost,
			notes, workshop, source_file, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, rec.VehicleID, rec.Date, rec.Odometer, rec.ServiceType, rec.Action, rec.Cost,
		rec.Notes, rec.Workshop, sourceFile)
	if err != nil {
		return fmt.Errorf("failed to append maintenance record for vehicle '%s': %w", rec.VehicleID, err)
	}
	return nil
}
