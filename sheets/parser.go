// sheets/parser.go
package sheets

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/adnansk/wheels-backend/models"
	"github.com/jszwec/csvutil"
	log "github.com/sirupsen/logrus"
)

// The parsers map sheet CSV exports onto the record structs via their csv
// tags. Header names must match the sheet columns exactly. Cells stay raw
// strings here; typed interpretation happens through the model accessors so a
// blank or garbage cell is "absent", never zero.

// ParseVehiclesCsv decodes the Vehicles sheet.
func ParseVehiclesCsv(reader io.Reader) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for Vehicles: %w", err)
	}
	// The export can carry extra columns we do not model; csvutil ignores them.
	if err := decoder.Decode(&vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode Vehicles CSV data: %w", err)
	}

	log.Printf("Successfully parsed %d vehicles from CSV.", len(vehicles))
	return vehicles, nil
}

// ParseServiceIntervalsCsv decodes the ServiceIntervals sheet.
func ParseServiceIntervalsCsv(reader io.Reader) ([]models.ServiceInterval, error) {
	var intervals []models.ServiceInterval

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for ServiceIntervals: %w", err)
	}

	if err := decoder.Decode(&intervals); err != nil {
		return nil, fmt.Errorf("failed to decode ServiceIntervals CSV data: %w", err)
	}

	log.Printf("Successfully parsed %d service intervals from CSV.", len(intervals))
	return intervals, nil
}

// ParseMaintenanceCsv decodes the MaintenanceRecords sheet.
func ParseMaintenanceCsv(reader io.Reader) ([]models.MaintenanceRecord, error) {
	var records []models.MaintenanceRecord

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for MaintenanceRecords: %w", err)
	}

	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode MaintenanceRecords CSV data: %w", err)
	}

	log.Printf("Successfully parsed %d maintenance records from CSV.", len(records))
	return records, nil
}

// ParseDocumentsCsv decodes the Documents sheet.
func ParseDocumentsCsv(reader io.Reader) ([]models.Document, error) {
	var docs []models.Document

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for Documents: %w", err)
	}

	if err := decoder.Decode(&docs); err != nil {
		return nil, fmt.Errorf("failed to decode Documents CSV data: %w", err)
	}

	log.Printf("Successfully parsed %d documents from CSV.", len(docs))
	return docs, nil
}

// ParseIssuesCsv decodes the IssueReports sheet.
func ParseIssuesCsv(reader io.Reader) ([]models.IssueReport, error) {
	var issues []models.IssueReport

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for IssueReports: %w", err)
	}

	if err := decoder.Decode(&issues); err != nil {
		return nil, fmt.Errorf("failed to decode IssueReports CSV data: %w", err)
	}

	log.Printf("Successfully parsed %d issue reports from CSV.", len(issues))
	return issues, nil
}
