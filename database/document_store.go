// database/document_store.go
package database

import (
	"fmt"

	"github.com/adnansk/wheels-backend/models"
	log "github.com/sirupsen/logrus"
)

// SaveDocuments replaces the mirrored Documents tab.
func SaveDocuments(docs []models.Document, sourceFile string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if len(docs) == 0 {
		log.Println("No documents provided to save.")
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for documents: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM documents WHERE source_file = ?", sourceFile); err != nil {
		return fmt.Errorf("failed to delete old documents for source %s: %w", sourceFile, err)
	}
	log.Printf("Cleared existing documents for source: %s", sourceFile)

	stmt, err := tx.Prepare(`
		INSERT INTO documents (
			vehicle_id, document_type, issue_date, expiry_date, notes,
			file_link, source_file, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare document insert statement: %w", err)
	}
	defer stmt.Close()

	for _, doc := range docs {
		_, err := stmt.Exec(
			doc.VehicleID, doc.DocumentType, doc.IssueDate, doc.ExpiryDate, doc.Notes,
			doc.FileLink, sourceFile,
		)
		if err != nil {
			log.Printf("ERROR saving document: %+v, Error: %v", doc, err)
			return fmt.Errorf("failed to execute document insert for vehicle '%s', type '%s': %w",
				doc.VehicleID, doc.DocumentType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for documents: %w", err)
	}

	log.Printf("Successfully saved %d documents from source: %s", len(docs), sourceFile)
	return nil
}

const documentColumns = `
	id, vehicle_id, document_type, issue_date, expiry_date, notes,
	file_link, created_at, updated_at`

// GetAllDocuments returns every document row, for the expiry dashboard.
func GetAllDocuments() ([]models.Document, error) {
	return queryDocuments("SELECT"+documentColumns+" FROM documents ORDER BY vehicle_id, document_type", nil)
}

// GetDocumentsForVehicle returns one vehicle's document rows.
func GetDocumentsForVehicle(vehicleID string) ([]models.Document, error) {
	return queryDocuments(
		"SELECT"+documentColumns+" FROM documents WHERE vehicle_id = ? ORDER BY document_type",
		[]any{vehicleID},
	)
}

func queryDocuments(query string, args []any) ([]models.Document, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID, &doc.VehicleID, &doc.DocumentType, &doc.IssueDate, &doc.ExpiryDate,
			&doc.Notes, &doc.FileLink, &doc.CreatedAt, &doc.UpdatedAt,
		)
		if err != nil {
			log.Printf("ERROR: Failed to scan document row: %v", err)
			continue
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return docs, nil
}

// AppendDocument mirrors one gateway-submitted document row into the cache.
func AppendDocument(doc models.Document, sourceFile string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	_, err := DB.Exec(`
		INSERT INTO documents (
			vehicle_id, document_type, issue_date, expiry_date, notes,
			file_link, source_file, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`, doc.VehicleID, doc.DocumentType, doc.IssueDate, doc.ExpiryDate, doc.Notes,
		doc.FileLink, sourceFile)
	if err != nil {
		return fmt.Errorf("failed to append document for vehicle '%s': %w", doc.VehicleID, err)
	}
	return nil
}
