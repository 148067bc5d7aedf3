// models/issue.go
package models

import (
	"strings"
	"time"
)

// IssueReport is one row of the IssueReports sheet. isFixed is string-encoded
// by the sheet ("TRUE"/"FALSE"/blank).
type IssueReport struct {
	ID int64 `db:"id" json:"-"`

	VehicleID string `csv:"vehicleID" db:"vehicle_id" json:"vehicleID"`
	Issue     string `csv:"issue" db:"issue" json:"issue"`
	Date      string `csv:"date" db:"report_date" json:"date"`
	Reporter  string `csv:"reporter" db:"reporter" json:"reporter"`
	IsFixed   string `csv:"isFixed" db:"is_fixed" json:"isFixed"`

	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// Open reports whether the issue is still outstanding. Anything except an
// explicit TRUE counts as open, matching the original isFixed !== 'TRUE'.
func (r *IssueReport) Open() bool {
	return !strings.EqualFold(strings.TrimSpace(r.IsFixed), "TRUE")
}

func (r *IssueReport) ReportDate() (time.Time, bool) { return ParseDateCell(r.Date) }
