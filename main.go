// main.go
package main

import (
	"fmt"
	"net/http"

	"github.com/adnansk/wheels-backend/config"
	"github.com/adnansk/wheels-backend/database"
	"github.com/adnansk/wheels-backend/gateway"
	"github.com/adnansk/wheels-backend/handlers"
	"github.com/adnansk/wheels-backend/services"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.Println("Starting Wheels Fleet Backend Application...")

	// Empty path lets LoadConfig try the standard locations.
	if err := config.LoadConfig(""); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	setupLogging(config.AppConfig.Log)
	log.Printf("Configuration loaded. Server port: %s, DB name: %s",
		config.AppConfig.Server.Port, config.AppConfig.Database.DBName)

	if err := database.InitDB(config.AppConfig.Database); err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer database.CloseDB()

	// Seed the mirror from local snapshots (or the workbook when stale).
	services.InitLastKnownSnapshots()

	handlers.InitGateway(gateway.New(config.AppConfig.Gateway))

	// --- Setup HTTP routes ---
	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := database.DB.Ping(); err != nil {
			http.Error(w, `{"status": "error", "message": "database connection error"}`, http.StatusInternalServerError)
			log.Printf("Health check failed: DB ping error: %v", err)
			return
		}
		fmt.Fprintln(w, `{"status": "ok", "message": "wheels backend is healthy"}`)
	})

	// Fleet list pipeline
	http.HandleFunc("/api/fleet/query", handlers.FleetQueryHandler)
	http.HandleFunc("/api/fleet/facets", handlers.FleetFacetsHandler)

	// Single vehicle
	http.HandleFunc("/api/vehicles", handlers.VehicleDetailHandler)

	// Dashboards
	http.HandleFunc("/api/dashboard/due-services", handlers.DueServicesHandler)
	http.HandleFunc("/api/dashboard/expiring-documents", handlers.ExpiringDocumentsHandler)

	// Writes (forwarded to the sheet gateway)
	http.HandleFunc("/api/records/maintenance", handlers.SubmitMaintenanceHandler)
	http.HandleFunc("/api/records/document", handlers.SubmitDocumentHandler)
	http.HandleFunc("/api/records/odometer", handlers.UpdateOdometerHandler)
	http.HandleFunc("/api/records/fix-issue", handlers.FixIssueHandler)
	http.HandleFunc("/api/records/predict-expiry", handlers.PredictExpiryHandler)

	// Admin routes for managing sheet snapshots
	http.HandleFunc("/api/admin/refresh-sheets/", handlers.ForceRefreshSheetsHandler) // Path ends with / to catch sub-paths
	http.HandleFunc("/api/admin/snapshot-status", handlers.SnapshotStatusHandler)

	serverAddr := ":" + config.AppConfig.Server.Port
	log.Printf("Server starting on http://localhost%s\n", serverAddr)
	if err := http.ListenAndServe(serverAddr, nil); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}

func setupLogging(cfg config.LogConfig) {
	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	if level, err := log.ParseLevel(cfg.Level); err == nil {
		log.SetLevel(level)
	}
}
