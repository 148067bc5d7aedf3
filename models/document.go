// models/document.go
package models

import "time"

// Document is one row of the Documents sheet (insurance, PUC, RC, ...).
// For a given (vehicleID, documentType) only the row with the furthest-future
// expiry date counts; older rows are superseded history.
type Document struct {
	ID int64 `db:"id" json:"-"`

	VehicleID    string `csv:"vehicleID" db:"vehicle_id" json:"vehicleID"`
	DocumentType string `csv:"documentType" db:"document_type" json:"documentType"`
	IssueDate    string `csv:"issueDate" db:"issue_date" json:"issueDate"`
	ExpiryDate   string `csv:"expiryDate" db:"expiry_date" json:"expiryDate"`
	Notes        string `csv:"notes" db:"notes" json:"notes"`
	FileLink     string `csv:"fileLink" db:"file_link" json:"fileLink"`

	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

func (d *Document) IssueTime() (time.Time, bool)  { return ParseDateCell(d.IssueDate) }
func (d *Document) ExpiryTime() (time.Time, bool) { return ParseDateCell(d.ExpiryDate) }
