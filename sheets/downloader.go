// sheets/downloader.go
package sheets

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/adnansk/wheels-backend/config"
	log "github.com/sirupsen/logrus"
)

// Sheet tab names as they appear in the workbook. These are also the source
// names used in sheet_snapshot_versions.
const (
	SheetVehicles           = "Vehicles"
	SheetServiceIntervals   = "ServiceIntervals"
	SheetMaintenanceRecords = "MaintenanceRecords"
	SheetDocuments          = "Documents"
	SheetIssueReports       = "IssueReports"
)

// AllSheets lists every tab the mirror tracks.
var AllSheets = []string{
	SheetVehicles,
	SheetServiceIntervals,
	SheetMaintenanceRecords,
	SheetDocuments,
	SheetIssueReports,
}

// DownloadFile downloads a URL and saves it to a local path.
func DownloadFile(url string, localSavePath string) error {
	log.Printf("Attempting to download file from URL: %s to local path: %s", url, localSavePath)

	client := http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download file from %s: received status code %d", url, resp.StatusCode)
	}

	dir := filepath.Dir(localSavePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	outFile, err := os.Create(localSavePath)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", localSavePath, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to copy downloaded content to %s: %w", localSavePath, err)
	}

	log.Printf("Successfully downloaded %s to %s", url, localSavePath)
	return nil
}

// CSVExportURL builds the per-tab CSV export URL from the configured base and
// a tab gid.
func CSVExportURL(gid string) string {
	base := config.AppConfig.SheetSource.CSVExportBase
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s&gid=%s", base, gid)
}

// LocalPathFor returns the configured snapshot path for a sheet.
func LocalPathFor(sheetName string) string {
	paths := config.AppConfig.LocalCSVPaths
	switch sheetName {
	case SheetVehicles:
		return paths.Vehicles
	case SheetServiceIntervals:
		return paths.ServiceIntervals
	case SheetMaintenanceRecords:
		return paths.MaintenanceRecords
	case SheetDocuments:
		return paths.Documents
	case SheetIssueReports:
		return paths.IssueReports
	}
	return ""
}

// DownloadSheetCsv downloads one tab's CSV export to its configured local
// snapshot path and returns that path.
func DownloadSheetCsv(sheetName, gid string) (string, error) {
	if gid == "" {
		return "", fmt.Errorf("no gid known for sheet %s", sheetName)
	}
	url := CSVExportURL(gid)
	if url == "" {
		return "", fmt.Errorf("sheet CSV export base URL is not configured")
	}
	localPath := LocalPathFor(sheetName)
	if localPath == "" {
		return "", fmt.Errorf("local save path for sheet %s is not configured", sheetName)
	}

	if err := DownloadFile(url, localPath); err != nil {
		return "", fmt.Errorf("failed to download %s sheet: %w", sheetName, err)
	}
	return localPath, nil
}
