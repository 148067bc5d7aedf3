// services/document_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/adnansk/wheels-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDocumentStatus_Tiers(t *testing.T) {
	docs := []models.Document{
		{VehicleID: "v1", DocumentType: "Insurance", ExpiryDate: day(20)},
		{VehicleID: "v1", DocumentType: "PUC", ExpiryDate: day(-5)},
		{VehicleID: "v1", DocumentType: "RC", ExpiryDate: day(60)},
		{VehicleID: "v2", DocumentType: "Insurance", ExpiryDate: day(200)},
	}

	statuses := ComputeDocumentStatus(docs, testToday)
	require.Len(t, statuses, 4)

	byKey := make(map[string]models.DocumentStatus)
	for _, s := range statuses {
		byKey[s.VehicleID+"/"+s.DocumentType] = s
	}

	assert.Equal(t, models.DocExpiring, byKey["v1/Insurance"].Tier, "20 days is inside the 30-day window")
	assert.Equal(t, models.DocExpired, byKey["v1/PUC"].Tier)
	assert.Equal(t, models.DocExpiring, byKey["v1/RC"].Tier, "registration papers use the 90-day window")
	assert.Equal(t, models.DocOK, byKey["v2/Insurance"].Tier)
}

func TestComputeDocumentStatus_RegistrationWindowOnlyForRCTypes(t *testing.T) {
	docs := []models.Document{
		{VehicleID: "v1", DocumentType: "Insurance", ExpiryDate: day(60)},
		{VehicleID: "v1", DocumentType: "Registration Certificate", ExpiryDate: day(60)},
		{VehicleID: "v1", DocumentType: "rc book", ExpiryDate: day(120)},
	}

	statuses := ComputeDocumentStatus(docs, testToday)
	require.Len(t, statuses, 3)

	byType := make(map[string]models.DocTier)
	for _, s := range statuses {
		byType[s.DocumentType] = s.Tier
	}
	assert.Equal(t, models.DocOK, byType["Insurance"], "60 days is outside the 30-day window")
	assert.Equal(t, models.DocExpiring, byType["Registration Certificate"])
	assert.Equal(t, models.DocOK, byType["rc book"], "120 days is outside even the 90-day window")
}

func TestComputeDocumentStatus_LatestExpirySupersedes(t *testing.T) {
	docs := []models.Document{
		{VehicleID: "v1", DocumentType: "Insurance", ExpiryDate: day(-30), Notes: "old policy"},
		{VehicleID: "v1", DocumentType: "Insurance", ExpiryDate: day(300), Notes: "renewed"},
	}

	statuses := ComputeDocumentStatus(docs, testToday)
	require.Len(t, statuses, 1)
	assert.Equal(t, models.DocOK, statuses[0].Tier)
	require.NotNil(t, statuses[0].Document)
	assert.Equal(t, "renewed", statuses[0].Document.Notes)
}

func TestComputeDocumentStatus_UnparseableExpirySkipped(t *testing.T) {
	docs := []models.Document{
		{VehicleID: "v1", DocumentType: "Insurance", ExpiryDate: "soon"},
		{VehicleID: "v1", DocumentType: "PUC", ExpiryDate: ""},
	}

	statuses := ComputeDocumentStatus(docs, testToday)
	assert.Empty(t, statuses)
}

func TestExpiringDocuments_MostUrgentFirst(t *testing.T) {
	statuses := ComputeDocumentStatus([]models.Document{
		{VehicleID: "v1", DocumentType: "Insurance", ExpiryDate: day(20)},
		{VehicleID: "v1", DocumentType: "PUC", ExpiryDate: day(-5)},
		{VehicleID: "v2", DocumentType: "Insurance", ExpiryDate: day(200)},
	}, testToday)

	urgent := ExpiringDocuments(statuses)
	require.Len(t, urgent, 2)
	assert.Equal(t, "PUC", urgent[0].DocumentType)
	assert.Equal(t, "Insurance", urgent[1].DocumentType)
}

func TestPredictExpiryDate(t *testing.T) {
	expiry, ok := PredictExpiryDate("Insurance", "2025-03-15")
	require.True(t, ok)
	assert.Equal(t, "2026-03-14", expiry)

	expiry, ok = PredictExpiryDate("PUC", "2025-03-15")
	require.True(t, ok)
	assert.Equal(t, "2025-09-14", expiry)

	_, ok = PredictExpiryDate("RC", "2025-03-15")
	assert.False(t, ok, "no suggestion for types without a standard validity")

	_, ok = PredictExpiryDate("Insurance", "not a date")
	assert.False(t, ok)
}

func TestFormatRemainingTime(t *testing.T) {
	assert.Equal(t, "Expired", FormatRemainingTime(0))
	assert.Equal(t, "Expired", FormatRemainingTime(-10))
	assert.Equal(t, "1 day", FormatRemainingTime(1))
	assert.Equal(t, "25 days", FormatRemainingTime(25))
	assert.Equal(t, "2 months, 5 days", FormatRemainingTime(65))
	assert.Equal(t, "1 year, 1 month, 5 days", FormatRemainingTime(400))
}

func TestDaysUntil_WholeDayCeil(t *testing.T) {
	due := testToday.Add(36 * time.Hour)
	assert.Equal(t, 2, models.DaysUntil(testToday, due), "a partial day rounds up")
	assert.Equal(t, 0, models.DaysUntil(testToday, testToday))
	assert.Equal(t, -3, models.DaysUntil(testToday, testToday.AddDate(0, 0, -3)))
}
