// handlers/write_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/adnansk/wheels-backend/database"
	"github.com/adnansk/wheels-backend/gateway"
	"github.com/adnansk/wheels-backend/models"
	"github.com/adnansk/wheels-backend/services"
	log "github.com/sirupsen/logrus"
)

// Writes never touch the sheet directly: they go through the Apps Script
// gateway, and on success the change is mirrored into the local cache so the
// next read reflects it before the next full sync.

// mirrorSourceFile marks cache rows written by the gateway path rather than a
// sheet snapshot; the next clear-and-load of the real snapshot replaces them.
const mirrorSourceFile = "gateway-mirror"

var gatewayClient *gateway.Client

// InitGateway wires the write gateway client. Called once from main.
func InitGateway(c *gateway.Client) {
	gatewayClient = c
}

// SubmitMaintenanceHandler forwards one workshop visit to the gateway.
// Expects POST requests to /api/records/maintenance.
func SubmitMaintenanceHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.MaintenanceEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if req.VehicleID == "" || req.Date == "" || len(req.Items) == 0 {
		respondWithError(w, http.StatusBadRequest, "vehicleID, date and at least one item are required")
		return
	}

	result := gatewayClient.SubmitMaintenanceBatch(req)
	if result.OK() {
		mirrorMaintenanceBatch(req)
		respondWithJSON(w, http.StatusOK, result)
		return
	}
	// Partial failure: report what landed; the cache stays untouched and the
	// next sheet sync reconciles.
	log.Printf("WARN: Maintenance batch for vehicle %s partially failed (%d/%d rows).",
		req.VehicleID, result.Failed, result.Submitted+result.Failed)
	respondWithJSON(w, http.StatusBadGateway, result)
}

func mirrorMaintenanceBatch(req models.MaintenanceEntryRequest) {
	for _, item := range req.Items {
		rec := models.MaintenanceRecord{
			VehicleID:   req.VehicleID,
			Date:        req.Date,
			Odometer:    req.Odometer,
			ServiceType: item.ServiceType,
			Action:      item.Action,
			Cost:        item.Cost,
			Notes:       item.Notes,
			Workshop:    req.Workshop,
		}
		if err := database.AppendMaintenanceRecord(rec, mirrorSourceFile); err != nil {
			log.Printf("WARN: Failed to mirror maintenance row into cache: %v", err)
		}
	}
	if labour, ok := models.ParseFloatCell(req.LabourCharges); ok && labour > 0 {
		// Matches the row the macro appends: no action or notes, charge as cost.
		rec := models.MaintenanceRecord{
			VehicleID:   req.VehicleID,
			Date:        req.Date,
			Odometer:    req.Odometer,
			ServiceType: "Labour Charges",
			Cost:        req.LabourCharges,
			Workshop:    req.Workshop,
		}
		if err := database.AppendMaintenanceRecord(rec, mirrorSourceFile); err != nil {
			log.Printf("WARN: Failed to mirror labour charges row into cache: %v", err)
		}
	}
}

// SubmitDocumentHandler forwards one document row to the gateway.
// Expects POST requests to /api/records/document.
func SubmitDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.DocumentEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if req.VehicleID == "" || req.DocumentType == "" || req.ExpiryDate == "" {
		respondWithError(w, http.StatusBadRequest, "vehicleID, documentType and expiryDate are required")
		return
	}

	if err := gatewayClient.SubmitDocument(req); err != nil {
		respondWithError(w, http.StatusBadGateway, "Gateway rejected document: "+err.Error())
		return
	}

	doc := models.Document{
		VehicleID:    req.VehicleID,
		DocumentType: req.DocumentType,
		IssueDate:    req.IssueDate,
		ExpiryDate:   req.ExpiryDate,
		Notes:        req.Notes,
	}
	if err := database.AppendDocument(doc, mirrorSourceFile); err != nil {
		log.Printf("WARN: Failed to mirror document into cache: %v", err)
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Document submitted successfully."})
}

// UpdateOdometerHandler forwards an in-place odometer update.
// Expects POST requests to /api/records/odometer.
func UpdateOdometerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.OdometerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if req.VehicleID == "" || req.Odometer == "" {
		respondWithError(w, http.StatusBadRequest, "vehicleID and odometer are required")
		return
	}
	if _, ok := models.ParseIntCell(req.Odometer); !ok {
		respondWithError(w, http.StatusBadRequest, "odometer must be numeric")
		return
	}

	today := time.Now().Format("2006-01-02")
	if err := gatewayClient.UpdateOdometer(req.VehicleID, req.Odometer, today); err != nil {
		respondWithError(w, http.StatusBadGateway, "Gateway rejected odometer update: "+err.Error())
		return
	}

	if err := database.UpdateVehicleOdometer(req.VehicleID, req.Odometer, today); err != nil {
		log.Printf("WARN: Failed to mirror odometer update into cache: %v", err)
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Odometer updated successfully."})
}

// PredictExpiryHandler suggests an expiry date for a new document from its
// type and issue date, for pre-filling the entry form.
// Expects GET requests to /api/records/predict-expiry?documentType=&issueDate=.
func PredictExpiryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	docType := r.URL.Query().Get("documentType")
	issueDate := r.URL.Query().Get("issueDate")
	if docType == "" || issueDate == "" {
		respondWithError(w, http.StatusBadRequest, "documentType and issueDate query parameters are required")
		return
	}

	expiry, ok := services.PredictExpiryDate(docType, issueDate)
	if !ok {
		respondWithJSON(w, http.StatusOK, map[string]any{"predicted": false})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"predicted": true, "expiryDate": expiry})
}

// FixIssueHandler marks an issue fixed via the gateway.
// Expects POST requests to /api/records/fix-issue.
func FixIssueHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.FixIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if req.VehicleID == "" || req.Issue == "" {
		respondWithError(w, http.StatusBadRequest, "vehicleID and issue are required")
		return
	}

	if err := gatewayClient.FixIssue(req.VehicleID, req.Issue); err != nil {
		respondWithError(w, http.StatusBadGateway, "Gateway rejected issue fix: "+err.Error())
		return
	}

	if err := database.MarkIssueFixed(req.VehicleID, req.Issue); err != nil {
		log.Printf("WARN: Failed to mirror issue fix into cache: %v", err)
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Issue marked as fixed."})
}
