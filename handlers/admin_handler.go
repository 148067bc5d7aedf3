// handlers/admin_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/adnansk/wheels-backend/services"
	"github.com/adnansk/wheels-backend/sheets"
)

// ForceRefreshSheetsHandler handles requests to manually re-sync sheet data.
// Expects POST requests to /api/admin/refresh-sheets/{source}
// where {source} is a sheet name (Vehicles, ServiceIntervals, ...) or "all".
func ForceRefreshSheetsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// Expected path: api/admin/refresh-sheets/{source}
	if len(pathParts) < 4 {
		respondWithError(w, http.StatusBadRequest, "Invalid path. Expected /api/admin/refresh-sheets/{source}")
		return
	}
	source := pathParts[3]

	var err error
	switch {
	case strings.EqualFold(source, "all"):
		err = services.RefreshAllSheets()
	case matchSheetName(source) != "":
		err = services.RefreshSheet(matchSheetName(source))
	default:
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Invalid source '%s'. Use a sheet name (%s) or 'all'.",
				source, strings.Join(sheets.AllSheets, ", ")))
		return
	}

	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to refresh %s: %v", source, err))
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Refresh of %s completed.", source)})
}

func matchSheetName(source string) string {
	for _, name := range sheets.AllSheets {
		if strings.EqualFold(name, source) {
			return name
		}
	}
	return ""
}

// SnapshotStatusHandler lists every tab's snapshot freshness record.
// Expects GET requests to /api/admin/snapshot-status.
func SnapshotStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	versions, err := services.SnapshotStatus()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load snapshot status: "+err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, versions)
}
