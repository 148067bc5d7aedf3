// handlers/fleet_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adnansk/wheels-backend/models"
	"github.com/adnansk/wheels-backend/services"
	log "github.com/sirupsen/logrus"
)

// FleetQueryHandler runs the filter/sort/group pipeline.
// Expects POST requests to /api/fleet/query with a FleetQueryRequest body.
func FleetQueryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.FleetQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	log.Printf("Handler: Fleet query received (groupBy=%q, sortBy=%q).", req.GroupBy, req.SortBy)

	result, err := services.QueryFleet(req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to query fleet: "+err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// FleetFacetsHandler returns the filter checkbox values with counts.
// Expects GET requests to /api/fleet/facets.
func FleetFacetsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	facets, err := services.FleetFacets()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load facets: "+err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, facets)
}
