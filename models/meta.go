// models/meta.go
package models

import "time"

// SheetSnapshotVersion tracks the freshness and provenance of each mirrored
// sheet tab: when it was last downloaded, how many rows it carried and a hash
// of the raw CSV so unchanged snapshots can be detected.
type SheetSnapshotVersion struct {
	ID                     int        `db:"id" json:"id"`
	SnapshotID             string     `db:"snapshot_id" json:"snapshot_id"` // uuid per refresh
	SourceName             string     `db:"source_name" json:"source_name"` // e.g. "Vehicles"
	SheetGID               string     `db:"sheet_gid" json:"sheet_gid"`
	SourceURL              string     `db:"source_url" json:"source_url"`
	LastDownloadedFilename string     `db:"last_downloaded_filename" json:"last_downloaded_filename,omitempty"`
	RowCount               int        `db:"row_count" json:"row_count"`
	DataHash               string     `db:"data_hash" json:"data_hash,omitempty"` // sha256 of the CSV
	LastCheckedAt          *time.Time `db:"last_checked_at" json:"last_checked_at,omitempty"`
	LastDownloadedAt       *time.Time `db:"last_downloaded_at" json:"last_downloaded_at,omitempty"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at" json:"updated_at"`
}
