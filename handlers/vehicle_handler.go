// handlers/vehicle_handler.go
package handlers

import (
	"net/http"

	"github.com/adnansk/wheels-backend/services"
	log "github.com/sirupsen/logrus"
)

// VehicleDetailHandler returns the single-vehicle view: due projections,
// document statuses, open issues and the maintenance history rollup.
// Expects GET requests to /api/vehicles?vehicleID=ID.
func VehicleDetailHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	vehicleID := r.URL.Query().Get("vehicleID")
	if vehicleID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing 'vehicleID' query parameter")
		return
	}

	log.Printf("Handler: Vehicle detail requested for %s.", vehicleID)

	detail, err := services.GetVehicleDetail(vehicleID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load vehicle detail: "+err.Error())
		return
	}
	if detail == nil {
		respondWithError(w, http.StatusNotFound, "No vehicle found with ID "+vehicleID)
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}
