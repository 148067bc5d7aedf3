// services/document_service.go
package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adnansk/wheels-backend/config"
	"github.com/adnansk/wheels-backend/models"
)

// ComputeDocumentStatus projects expiry urgency for the current document of
// each (vehicle, type) pair. Only the row with the furthest-future expiry
// counts; superseded rows are history. Rows with no parseable expiry date are
// skipped entirely.
func ComputeDocumentStatus(documents []models.Document, today time.Time) []models.DocumentStatus {
	type key struct{ vehicleID, docType string }

	latest := make(map[key]*models.Document)
	latestExpiry := make(map[key]time.Time)
	var order []key

	for i := range documents {
		doc := &documents[i]
		expiry, ok := doc.ExpiryTime()
		if !ok {
			continue
		}
		k := key{doc.VehicleID, doc.DocumentType}
		if prev, seen := latestExpiry[k]; !seen || expiry.After(prev) {
			if _, seen := latest[k]; !seen {
				order = append(order, k)
			}
			latest[k] = doc
			latestExpiry[k] = expiry
		}
	}

	statuses := make([]models.DocumentStatus, 0, len(order))
	for _, k := range order {
		doc := latest[k]
		expiry := latestExpiry[k]
		remaining := models.DaysUntil(today, expiry)
		statuses = append(statuses, models.DocumentStatus{
			VehicleID:     doc.VehicleID,
			DocumentType:  doc.DocumentType,
			ExpiryDate:    expiry,
			RemainingDays: remaining,
			Tier:          documentTier(doc.DocumentType, remaining),
			Document:      doc,
		})
	}
	return statuses
}

// documentTier classifies remaining validity. Registration papers get a longer
// warning window than the rest because renewing them takes longer.
func documentTier(docType string, remainingDays int) models.DocTier {
	if remainingDays <= 0 {
		return models.DocExpired
	}
	window := config.AppConfig.Alerts.DocExpiryDays
	if registrationDocument(docType) {
		window = config.AppConfig.Alerts.RegistrationExpiryDays
	}
	if remainingDays <= window {
		return models.DocExpiring
	}
	return models.DocOK
}

func registrationDocument(docType string) bool {
	t := strings.ToLower(docType)
	return strings.Contains(t, "rc") || strings.Contains(t, "registration")
}

// ExpiringDocuments filters statuses down to the expired and expiring ones,
// most urgent first.
func ExpiringDocuments(statuses []models.DocumentStatus) []models.DocumentStatus {
	var urgent []models.DocumentStatus
	for _, s := range statuses {
		if s.Tier != models.DocOK {
			urgent = append(urgent, s)
		}
	}
	sort.SliceStable(urgent, func(i, j int) bool {
		return urgent[i].RemainingDays < urgent[j].RemainingDays
	})
	return urgent
}

// PredictExpiryDate suggests an expiry date for a new document from its issue
// date: insurance runs a year, PUC six months, both ending the day before the
// anniversary. Other types get no suggestion.
func PredictExpiryDate(docType, issueDate string) (string, bool) {
	issued, ok := models.ParseDateCell(issueDate)
	if !ok {
		return "", false
	}
	t := strings.ToLower(docType)
	switch {
	case strings.Contains(t, "insurance"):
		return issued.AddDate(1, 0, -1).Format("2006-01-02"), true
	case strings.Contains(t, "puc") || strings.Contains(t, "pollution"):
		return issued.AddDate(0, 6, -1).Format("2006-01-02"), true
	}
	return "", false
}

// FormatRemainingTime renders a day count as "X years, Y months, Z days",
// dropping zero parts. Non-positive counts render as "Expired".
func FormatRemainingTime(days int) string {
	if days <= 0 {
		return "Expired"
	}
	years := days / 365
	rem := days % 365
	months := rem / 30
	rem = rem % 30

	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if months > 0 {
		parts = append(parts, plural(months, "month"))
	}
	if rem > 0 || len(parts) == 0 {
		parts = append(parts, plural(rem, "day"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
