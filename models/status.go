// models/status.go
package models

import "time"

// UrgencyTier is the maintenance urgency for a component or a whole vehicle.
type UrgencyTier string

const (
	TierNormal   UrgencyTier = "normal"
	TierUpcoming UrgencyTier = "upcoming"
	TierOverdue  UrgencyTier = "overdue"
)

// Worse returns the more urgent of two tiers (overdue > upcoming > normal).
func (t UrgencyTier) Worse(other UrgencyTier) UrgencyTier {
	if t == TierOverdue || other == TierOverdue {
		return TierOverdue
	}
	if t == TierUpcoming || other == TierUpcoming {
		return TierUpcoming
	}
	return TierNormal
}

// DueLabel says what the nearer distance threshold asks for.
type DueLabel string

const (
	LabelReplace DueLabel = "Replace"
	LabelCheck   DueLabel = "Check"
	LabelNone    DueLabel = ""
)

// DueProjection is the computed next trigger point for one component, derived
// from its last recorded service and its interval rule. Pointer fields are nil
// when the corresponding side (distance or date) has no data.
type DueProjection struct {
	Component string   `json:"component"`
	Label     DueLabel `json:"label"`

	LastDate     *time.Time `json:"lastDate,omitempty"`
	LastOdometer *int       `json:"lastOdometer,omitempty"`

	DueKM   *int       `json:"dueKM,omitempty"`
	DueDate *time.Time `json:"dueDate,omitempty"`

	RemainingKM   *int `json:"remainingKM,omitempty"`
	RemainingDays *int `json:"remainingDays,omitempty"`

	Tier UrgencyTier `json:"tier"`
}

// VehicleDueStatus is the engine output for one vehicle.
type VehicleDueStatus struct {
	VehicleID   string          `json:"vehicleID"`
	Tier        UrgencyTier     `json:"tier"`
	NoIntervals bool            `json:"noIntervals"` // no interval configured at all
	Projections []DueProjection `json:"projections"`
}

// DocTier is the expiry urgency of a document.
type DocTier string

const (
	DocOK       DocTier = "ok"
	DocExpiring DocTier = "expiring"
	DocExpired  DocTier = "expired"
)

// DocumentStatus is the expiry projection for the current (latest-expiry)
// document of one type.
type DocumentStatus struct {
	VehicleID     string    `json:"vehicleID"`
	DocumentType  string    `json:"documentType"`
	ExpiryDate    time.Time `json:"expiryDate"`
	RemainingDays int       `json:"remainingDays"`
	Tier          DocTier   `json:"tier"`
	Document      *Document `json:"document,omitempty"`
}

// VehicleGroup is one named partition of the fleet list.
type VehicleGroup struct {
	Name     string    `json:"name"`
	Vehicles []Vehicle `json:"vehicles"`
}

// HistoryRollup is one maintenance visit: all records logged at the same
// odometer reading, with costs summed.
type HistoryRollup struct {
	Odometer  string  `json:"odometer"` // raw cell; may be blank for undated work
	Date      string  `json:"date"`
	TotalCost float64 `json:"totalCost"`
	Items     int     `json:"items"`
}
