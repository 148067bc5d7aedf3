// database/issue_store.go
package database

import (
	"fmt"

	"github.com/adnansk/wheels-backend/models"
	log "github.com/sirupsen/logrus"
)

// SaveIssueReports replaces the mirrored IssueReports tab.
func SaveIssueReports(issues []models.IssueReport, sourceFile string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if len(issues) == 0 {
		log.Println("No issue reports provided to save.")
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for issue reports: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM issue_reports WHERE source_file = ?", sourceFile); err != nil {
		return fmt.Errorf("failed to delete old issue reports for source %s: %w", sourceFile, err)
	}
	log.Printf("Cleared existing issue reports for source: %s", sourceFile)

	stmt, err := tx.Prepare(`
		INSERT INTO issue_reports (
			vehicle_id, issue, report_date, reporter, is_fixed,
			source_file, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, NOW())
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare issue report insert statement: %w", err)
	}
	defer stmt.Close()

	for _, iss := range issues {
		_, err := stmt.Exec(
			iss.VehicleID, iss.Issue, iss.Date, iss.Reporter, iss.IsFixed,
			sourceFile,
		)
		if err != nil {
			log.Printf("ERROR saving issue report: %+v, Error: %v", iss, err)
			return fmt.Errorf("failed to execute issue insert for vehicle '%s': %w", iss.VehicleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for issue reports: %w", err)
	}

	log.Printf("Successfully saved %d issue reports from source: %s", len(issues), sourceFile)
	return nil
}

const issueColumns = `
	id, vehicle_id, issue, report_date, reporter, is_fixed, created_at, updated_at`

// GetAllIssueReports returns every issue row, open and fixed.
func GetAllIssueReports() ([]models.IssueReport, error) {
	return queryIssues("SELECT"+issueColumns+" FROM issue_reports ORDER BY vehicle_id, report_date", nil)
}

// GetIssuesForVehicle returns one vehicle's issue rows, open and fixed.
func GetIssuesForVehicle(vehicleID string) ([]models.IssueReport, error) {
	return queryIssues(
		"SELECT"+issueColumns+" FROM issue_reports WHERE vehicle_id = ? ORDER BY report_date",
		[]any{vehicleID},
	)
}

func queryIssues(query string, args []any) ([]models.IssueReport, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query issue reports: %w", err)
	}
	defer rows.Close()

	var issues []models.IssueReport
	for rows.Next() {
		var iss models.IssueReport
		err := rows.Scan(
			&iss.ID, &iss.VehicleID, &iss.Issue, &iss.Date, &iss.Reporter,
			&iss.IsFixed, &iss.CreatedAt, &iss.UpdatedAt,
		)
		if err != nil {
			log.Printf("ERROR: Failed to scan issue report row: %v", err)
			continue
		}
		issues = append(issues, iss)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating issue report rows: %w", err)
	}
	return issues, nil
}

// MarkIssueFixed mirrors the gateway's fix-issue write into the cache by
// matching on vehicle and issue text, the same key the sheet macro uses.
func MarkIssueFixed(vehicleID, issueText string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	res, err := DB.Exec(
		"UPDATE issue_reports SET is_fixed = 'TRUE', updated_at = NOW() WHERE vehicle_id = ? AND issue = ?",
		vehicleID, issueText,
	)
	if err != nil {
		return fmt.Errorf("failed to mark issue fixed for vehicle %s: %w", vehicleID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		log.Printf("WARN: Fix-issue update touched no rows for vehicle %s, issue %q.", vehicleID, issueText)
	}
	return nil
}
