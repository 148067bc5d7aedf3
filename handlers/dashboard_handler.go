// handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"github.com/adnansk/wheels-backend/services"
)

// DueServicesHandler returns the due-services table: per vehicle, every
// projected component with the nearest due point first.
// Expects GET requests to /api/dashboard/due-services.
func DueServicesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	rows, err := services.DueServicesReport()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build due-services report: "+err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, rows)
}

// ExpiringDocumentsHandler returns every expired or expiring document across
// the fleet.
// Expects GET requests to /api/dashboard/expiring-documents.
func ExpiringDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	rows, err := services.ExpiringDocumentsReport()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build expiring-documents report: "+err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, rows)
}
