// database/snapshot_store.go
package database

import (
	"database/sql"
	"fmt"

	"github.com/adnansk/wheels-backend/models"
	log "github.com/sirupsen/logrus"
)

// SaveSheetSnapshotVersion upserts the freshness record for one sheet tab,
// keyed by source name. Each refresh stamps a new snapshot_id.
func SaveSheetSnapshotVersion(v models.SheetSnapshotVersion) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	_, err := DB.Exec(`
		INSERT INTO sheet_snapshot_versions (
			snapshot_id, source_name, sheet_gid, source_url,
			last_downloaded_filename, row_count, data_hash,
			last_checked_at, last_downloaded_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			snapshot_id = VALUES(snapshot_id),
			sheet_gid = VALUES(sheet_gid),
			source_url = VALUES(source_url),
			last_downloaded_filename = VALUES(last_downloaded_filename),
			row_count = VALUES(row_count),
			data_hash = VALUES(data_hash),
			last_checked_at = VALUES(last_checked_at),
			last_downloaded_at = VALUES(last_downloaded_at),
			updated_at = NOW()
	`, v.SnapshotID, v.SourceName, v.SheetGID, v.SourceURL,
		v.LastDownloadedFilename, v.RowCount, v.DataHash,
		v.LastCheckedAt, v.LastDownloadedAt)
	if err != nil {
		return fmt.Errorf("failed to save snapshot version for source %s: %w", v.SourceName, err)
	}
	log.Printf("Saved snapshot version for source %s (snapshot %s, %d rows).",
		v.SourceName, v.SnapshotID, v.RowCount)
	return nil
}

// GetSheetSnapshotVersion returns the freshness record for one sheet tab.
// Returns (nil, nil) when no refresh has been recorded yet.
func GetSheetSnapshotVersion(sourceName string) (*models.SheetSnapshotVersion, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	row := DB.QueryRow(`
		SELECT id, snapshot_id, source_name, sheet_gid, source_url,
			last_downloaded_filename, row_count, data_hash,
			last_checked_at, last_downloaded_at, created_at, updated_at
		FROM sheet_snapshot_versions WHERE source_name = ?
	`, sourceName)

	var v models.SheetSnapshotVersion
	err := row.Scan(
		&v.ID, &v.SnapshotID, &v.SourceName, &v.SheetGID, &v.SourceURL,
		&v.LastDownloadedFilename, &v.RowCount, &v.DataHash,
		&v.LastCheckedAt, &v.LastDownloadedAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot version for source %s: %w", sourceName, err)
	}
	return &v, nil
}

// GetAllSheetSnapshotVersions lists every tab's freshness record, for the
// admin status endpoint.
func GetAllSheetSnapshotVersions() ([]models.SheetSnapshotVersion, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	rows, err := DB.Query(`
		SELECT id, snapshot_id, source_name, sheet_gid, source_url,
			last_downloaded_filename, row_count, data_hash,
			last_checked_at, last_downloaded_at, created_at, updated_at
		FROM sheet_snapshot_versions ORDER BY source_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot versions: %w", err)
	}
	defer rows.Close()

	var versions []models.SheetSnapshotVersion
	for rows.Next() {
		var v models.SheetSnapshotVersion
		err := rows.Scan(
			&v.ID, &v.SnapshotID, &v.SourceName, &v.SheetGID, &v.SourceURL,
			&v.LastDownloadedFilename, &v.RowCount, &v.DataHash,
			&v.LastCheckedAt, &v.LastDownloadedAt, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			log.Printf("ERROR: Failed to scan snapshot version row: %v", err)
			continue
		}
		versions = append(versions, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot version rows: %w", err)
	}
	return versions, nil
}
