// services/snapshot_service.go
package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adnansk/wheels-backend/config"
	"github.com/adnansk/wheels-backend/database"
	"github.com/adnansk/wheels-backend/models"
	"github.com/adnansk/wheels-backend/sheets"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// FleetData is everything the dashboards read, loaded in one shot.
type FleetData struct {
	Vehicles    []models.Vehicle
	Intervals   []models.ServiceInterval
	Maintenance []models.MaintenanceRecord
	Documents   []models.Document
	Issues      []models.IssueReport
}

// LoadFleetSnapshot loads all five mirrored tables concurrently.
func LoadFleetSnapshot() (*FleetData, error) {
	var data FleetData
	var g errgroup.Group

	g.Go(func() (err error) { data.Vehicles, err = database.GetAllVehicles(); return })
	g.Go(func() (err error) { data.Intervals, err = database.GetAllServiceIntervals(); return })
	g.Go(func() (err error) { data.Maintenance, err = database.GetAllMaintenanceRecords(); return })
	g.Go(func() (err error) { data.Documents, err = database.GetAllDocuments(); return })
	g.Go(func() (err error) { data.Issues, err = database.GetAllIssueReports(); return })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load fleet snapshot: %w", err)
	}
	return &data, nil
}

// RefreshSheet downloads one tab's CSV export, reloads its mirror table and
// records the snapshot version. The gid comes from config, falling back to
// scraping the published workbook page.
func RefreshSheet(sheetName string) error {
	log.Printf("Service: Refreshing sheet %s...", sheetName)

	gid, err := resolveSheetGID(sheetName, nil)
	if err != nil {
		return err
	}
	return refreshSheetWithGID(sheetName, gid)
}

// RefreshAllSheets refreshes every tab, discovering gids once up front. Tabs
// fail independently; the first error is returned after all tabs ran.
func RefreshAllSheets() error {
	log.Println("Service: Refreshing all sheets...")

	var discovered map[string]string
	if tabsMissingFromConfig() {
		tabs, err := sheets.DiscoverSheetTabs(config.AppConfig.SheetSource.PublishedPageURL)
		if err != nil {
			log.Printf("WARN: Tab discovery failed, relying on configured gids only: %v", err)
		} else {
			discovered = tabs
		}
	}

	var firstErr error
	for _, sheetName := range sheets.AllSheets {
		gid, err := resolveSheetGID(sheetName, discovered)
		if err == nil {
			err = refreshSheetWithGID(sheetName, gid)
		}
		if err != nil {
			log.Printf("ERROR: Refresh failed for sheet %s: %v", sheetName, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// tabsMissingFromConfig reports whether any tracked tab lacks a configured gid.
func tabsMissingFromConfig() bool {
	for _, sheetName := range sheets.AllSheets {
		if gid := config.AppConfig.SheetSource.TabGIDs[sheetName]; gid == "" {
			return true
		}
	}
	return false
}

// resolveSheetGID finds the gid for one tab: config first, then the supplied
// discovery map, then a fresh scrape of the published page.
func resolveSheetGID(sheetName string, discovered map[string]string) (string, error) {
	configured := config.AppConfig.SheetSource.TabGIDs
	gid, err := sheets.ResolveGID(configured, discovered, sheetName)
	if err == nil {
		return gid, nil
	}
	if discovered != nil {
		return "", err
	}
	fresh, derr := sheets.DiscoverSheetTabs(config.AppConfig.SheetSource.PublishedPageURL)
	if derr != nil {
		return "", fmt.Errorf("gid for sheet %s not configured and discovery failed: %w", sheetName, derr)
	}
	return sheets.ResolveGID(configured, fresh, sheetName)
}

func refreshSheetWithGID(sheetName, gid string) error {
	localPath, err := sheets.DownloadSheetCsv(sheetName, gid)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("failed to read downloaded snapshot %s: %w", localPath, err)
	}
	hash := sha256.Sum256(raw)

	rowCount, err := parseAndStoreSheet(sheetName, raw, filepath.Base(localPath))
	if err != nil {
		return err
	}

	now := time.Now()
	version := models.SheetSnapshotVersion{
		SnapshotID:             uuid.NewString(),
		SourceName:             sheetName,
		SheetGID:               gid,
		SourceURL:              sheets.CSVExportURL(gid),
		LastDownloadedFilename: filepath.Base(localPath),
		RowCount:               rowCount,
		DataHash:               hex.EncodeToString(hash[:]),
		LastCheckedAt:          &now,
		LastDownloadedAt:       &now,
	}
	if err := database.SaveSheetSnapshotVersion(version); err != nil {
		// The data itself landed; a stale version row is worth a warning, not
		// a failed refresh.
		log.Printf("WARN: Failed to record snapshot version for %s: %v", sheetName, err)
	}

	log.Printf("Service: Sheet %s refreshed (%d rows, snapshot %s).", sheetName, rowCount, version.SnapshotID)
	return nil
}

// parseAndStoreSheet decodes one tab's CSV and clear-and-loads its mirror
// table. Returns the parsed row count.
func parseAndStoreSheet(sheetName string, raw []byte, sourceFile string) (int, error) {
	switch sheetName {
	case sheets.SheetVehicles:
		vehicles, err := sheets.ParseVehiclesCsv(bytes.NewReader(raw))
		if err != nil {
			return 0, err
		}
		return len(vehicles), database.SaveVehicles(vehicles, sourceFile)
	case sheets.SheetServiceIntervals:
		intervals, err := sheets.ParseServiceIntervalsCsv(bytes.NewReader(raw))
		if err != nil {
			return 0, err
		}
		return len(intervals), database.SaveServiceIntervals(intervals, sourceFile)
	case sheets.SheetMaintenanceRecords:
		records, err := sheets.ParseMaintenanceCsv(bytes.NewReader(raw))
		if err != nil {
			return 0, err
		}
		return len(records), database.SaveMaintenanceRecords(records, sourceFile)
	case sheets.SheetDocuments:
		docs, err := sheets.ParseDocumentsCsv(bytes.NewReader(raw))
		if err != nil {
			return 0, err
		}
		return len(docs), database.SaveDocuments(docs, sourceFile)
	case sheets.SheetIssueReports:
		issues, err := sheets.ParseIssuesCsv(bytes.NewReader(raw))
		if err != nil {
			return 0, err
		}
		return len(issues), database.SaveIssueReports(issues, sourceFile)
	}
	return 0, fmt.Errorf("unknown sheet name: %s", sheetName)
}

// InitLastKnownSnapshots seeds the mirror from the local CSV snapshots on
// disk, so the service comes up with data even when the workbook is
// unreachable. Sheets whose snapshot is stale (or missing) per the freshness
// interval are refreshed from the workbook instead.
func InitLastKnownSnapshots() {
	log.Println("Service: Initializing from last known sheet snapshots...")

	maxAge := config.AppConfig.DataFreshness.SnapshotCheckInterval
	for _, sheetName := range sheets.AllSheets {
		localPath := sheets.LocalPathFor(sheetName)
		if localPath == "" {
			log.Printf("WARN: No local snapshot path configured for sheet %s; skipping init.", sheetName)
			continue
		}

		// A fresh version row means the mirror table already holds this
		// snapshot; nothing to reload.
		if ver, err := database.GetSheetSnapshotVersion(sheetName); err == nil && ver != nil &&
			ver.LastDownloadedAt != nil && time.Since(*ver.LastDownloadedAt) < maxAge {
			log.Printf("Service: Mirror for %s is current (snapshot %s); skipping init load.",
				sheetName, ver.SnapshotID)
			continue
		}

		info, err := os.Stat(localPath)
		fresh := err == nil && time.Since(info.ModTime()) < maxAge

		if fresh {
			raw, err := os.ReadFile(localPath)
			if err == nil {
				if n, perr := parseAndStoreSheet(sheetName, raw, filepath.Base(localPath)); perr == nil {
					log.Printf("Service: Loaded %d rows for %s from local snapshot.", n, sheetName)
					continue
				} else {
					log.Printf("WARN: Local snapshot for %s failed to load: %v", sheetName, perr)
				}
			}
		}

		if err := RefreshSheet(sheetName); err != nil {
			log.Printf("ERROR: Initial refresh failed for sheet %s: %v", sheetName, err)
		}
	}
}
