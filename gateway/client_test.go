// gateway/client_test.go
package gateway

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/adnansk/wheels-backend/config"
	"github.com/adnansk/wheels-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	ts := httptest.NewServer(handler)
	c := New(config.GatewayConfig{WebAppURL: ts.URL, TimeoutSeconds: 5})
	return c, ts
}

func TestSubmitMaintenanceBatch_OneRowPerItemPlusLabour(t *testing.T) {
	var posted []url.Values
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		posted = append(posted, r.PostForm)
		fmt.Fprint(w, "Maintenance record added")
	})
	defer ts.Close()

	result := c.SubmitMaintenanceBatch(models.MaintenanceEntryRequest{
		VehicleID:     "v1",
		Date:          "2025-06-01",
		Odometer:      "15000",
		Workshop:      "City Motors",
		LabourCharges: "800",
		Items: []models.MaintenanceItemRow{
			{ServiceType: "Engine Oil", Action: "Replaced", Cost: "1200"},
			{ServiceType: "Air Filter", Action: "Cleaned", Cost: "0"},
		},
	})

	assert.True(t, result.OK())
	assert.Equal(t, 3, result.Submitted, "two items plus the labour charges row")
	require.Len(t, posted, 3)

	first := posted[0]
	assert.Equal(t, "maintenance", first.Get("type"))
	assert.Equal(t, "v1", first.Get("vehicleID"))
	assert.Equal(t, "2025-06-01", first.Get("date"))
	assert.Equal(t, "15000", first.Get("odometer"))
	assert.Equal(t, "City Motors", first.Get("workshop"))
	assert.Equal(t, "Engine Oil", first.Get("serviceType"))
	assert.Equal(t, "Replaced", first.Get("action"))
	assert.Equal(t, "1200", first.Get("cost"))
	assert.Equal(t, "800", first.Get("labourCharges"), "every item row carries the visit's labour charges")
	assert.Equal(t, "800", posted[1].Get("labourCharges"))

	labour := posted[2]
	assert.Equal(t, "Labour Charges", labour.Get("serviceType"))
	assert.Equal(t, "800", labour.Get("cost"))
	assert.Equal(t, "City Motors", labour.Get("workshop"))
	require.True(t, labour.Has("action"))
	assert.Equal(t, "", labour.Get("action"), "the labour row sends an empty action")
	require.True(t, labour.Has("notes"))
	assert.Equal(t, "", labour.Get("notes"))
	assert.False(t, labour.Has("labourCharges"), "the charge travels as the row's cost, not as labourCharges")
}

func TestSubmitMaintenanceBatch_NoLabourRowWhenZero(t *testing.T) {
	calls := 0
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, "Maintenance record added")
	})
	defer ts.Close()

	result := c.SubmitMaintenanceBatch(models.MaintenanceEntryRequest{
		VehicleID: "v1",
		Date:      "2025-06-01",
		Items:     []models.MaintenanceItemRow{{ServiceType: "Engine Oil", Action: "Replaced"}},
	})

	assert.True(t, result.OK())
	assert.Equal(t, 1, calls)
}

func TestSubmitMaintenanceBatch_ContinuesAfterFailedRow(t *testing.T) {
	calls := 0
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "macro exploded", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "Maintenance record added")
	})
	defer ts.Close()

	result := c.SubmitMaintenanceBatch(models.MaintenanceEntryRequest{
		VehicleID: "v1",
		Date:      "2025-06-01",
		Items: []models.MaintenanceItemRow{
			{ServiceType: "Engine Oil", Action: "Replaced"},
			{ServiceType: "Air Filter", Action: "Cleaned"},
		},
	})

	assert.False(t, result.OK())
	assert.Equal(t, 1, result.Submitted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 2, calls, "a failed row must not stop the batch")
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Engine Oil")
}

func TestSubmitDocument_SendsDocumentFields(t *testing.T) {
	var form url.Values
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		fmt.Fprint(w, "Document added")
	})
	defer ts.Close()

	err := c.SubmitDocument(models.DocumentEntryRequest{
		VehicleID:    "v1",
		DocumentType: "Insurance",
		IssueDate:    "2025-03-15",
		ExpiryDate:   "2026-03-14",
		Notes:        "comprehensive",
	})

	require.NoError(t, err)
	assert.Equal(t, "document", form.Get("type"))
	assert.Equal(t, "Insurance", form.Get("documentType"))
	assert.Equal(t, "2026-03-14", form.Get("expiryDate"))
}

func TestUpdateOdometer_SuccessNeedsConfirmation(t *testing.T) {
	response := "Odometer updated to 15200"
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "updateOdometer", r.PostForm.Get("type"))
		fmt.Fprint(w, response)
	})
	defer ts.Close()

	require.NoError(t, c.UpdateOdometer("v1", "15200", "2025-06-01"))

	response = "Vehicle not found"
	err := c.UpdateOdometer("v1", "15200", "2025-06-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Vehicle not found")
}

func TestFixIssue_SuccessNeedsConfirmation(t *testing.T) {
	response := "Issue marked as fixed"
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "fixIssue", r.PostForm.Get("type"))
		assert.Equal(t, "Brake noise at low speed", r.PostForm.Get("issue"))
		fmt.Fprint(w, response)
	})
	defer ts.Close()

	require.NoError(t, c.FixIssue("v1", "Brake noise at low speed"))

	response = "Issue not found"
	err := c.FixIssue("v1", "Brake noise at low speed")
	require.Error(t, err)
}

func TestClient_UnconfiguredURL(t *testing.T) {
	c := New(config.GatewayConfig{})
	err := c.UpdateOdometer("v1", "100", "2025-06-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
