// gateway/client.go
package gateway

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/adnansk/wheels-backend/config"
	"github.com/adnansk/wheels-backend/models"
	log "github.com/sirupsen/logrus"
)

// All writes go through the sheet's Apps Script web app: a form-encoded POST
// whose "type" field selects the macro action. The macro answers with a plain
// text sentence, so success is detected by substring, not status code alone.
// That contract is fixed on the sheet side; this client has to match it.

const (
	typeMaintenance    = "maintenance"
	typeDocument       = "document"
	typeUpdateOdometer = "updateOdometer"
	typeFixIssue       = "fixIssue"
)

// Client talks to the write gateway.
type Client struct {
	webAppURL  string
	httpClient *http.Client
}

// New builds a gateway client from config.
func New(cfg config.GatewayConfig) *Client {
	return &Client{
		webAppURL:  cfg.WebAppURL,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

// postForm sends one macro call and returns the response text.
func (c *Client) postForm(values url.Values) (string, error) {
	if c.webAppURL == "" {
		return "", fmt.Errorf("write gateway URL is not configured")
	}

	resp, err := c.httpClient.PostForm(c.webAppURL, values)
	if err != nil {
		return "", fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gateway response: %w", err)
	}
	text := strings.TrimSpace(string(body))

	if resp.StatusCode != http.StatusOK {
		return text, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, text)
	}
	return text, nil
}

// BatchResult summarizes a multi-row maintenance submission.
type BatchResult struct {
	Submitted int      `json:"submitted"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// OK reports whether every row landed.
func (r BatchResult) OK() bool { return r.Failed == 0 }

// SubmitMaintenanceBatch forwards one workshop visit row by row. Rows are
// sent sequentially because the macro appends to the sheet; a failed row does
// not stop the rest. When labour charges are present a synthetic "Labour
// Charges" row closes the visit so the cost shows up in history totals.
func (c *Client) SubmitMaintenanceBatch(entry models.MaintenanceEntryRequest) BatchResult {
	log.Printf("Gateway: Submitting %d maintenance rows for vehicle %s...", len(entry.Items), entry.VehicleID)

	var result BatchResult
	submitRow := func(values url.Values, serviceType string) {
		if _, err := c.postForm(values); err != nil {
			log.Printf("ERROR: Gateway maintenance row failed (vehicle %s, serviceType %s): %v",
				entry.VehicleID, serviceType, err)
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", serviceType, err))
			return
		}
		result.Submitted++
	}

	// Every item row carries the visit's labourCharges; the macro reads it
	// from whichever row arrives.
	for _, row := range entry.Items {
		values := url.Values{}
		values.Set("type", typeMaintenance)
		values.Set("vehicleID", entry.VehicleID)
		values.Set("date", entry.Date)
		values.Set("odometer", entry.Odometer)
		values.Set("workshop", entry.Workshop)
		values.Set("serviceType", row.ServiceType)
		values.Set("action", row.Action)
		values.Set("cost", row.Cost)
		values.Set("notes", row.Notes)
		values.Set("labourCharges", entry.LabourCharges)
		submitRow(values, row.ServiceType)
	}

	// The labour row has no action, notes or labourCharges of its own; the
	// charge travels as its cost.
	if labour, ok := models.ParseFloatCell(entry.LabourCharges); ok && labour > 0 {
		values := url.Values{}
		values.Set("type", typeMaintenance)
		values.Set("vehicleID", entry.VehicleID)
		values.Set("date", entry.Date)
		values.Set("odometer", entry.Odometer)
		values.Set("workshop", entry.Workshop)
		values.Set("serviceType", "Labour Charges")
		values.Set("action", "")
		values.Set("cost", entry.LabourCharges)
		values.Set("notes", "")
		submitRow(values, "Labour Charges")
	}

	log.Printf("Gateway: Maintenance batch done for vehicle %s (%d submitted, %d failed).",
		entry.VehicleID, result.Submitted, result.Failed)
	return result
}

// SubmitDocument forwards one document row.
func (c *Client) SubmitDocument(entry models.DocumentEntryRequest) error {
	log.Printf("Gateway: Submitting %s document for vehicle %s...", entry.DocumentType, entry.VehicleID)

	values := url.Values{}
	values.Set("type", typeDocument)
	values.Set("vehicleID", entry.VehicleID)
	values.Set("documentType", entry.DocumentType)
	values.Set("issueDate", entry.IssueDate)
	values.Set("expiryDate", entry.ExpiryDate)
	values.Set("notes", entry.Notes)

	_, err := c.postForm(values)
	return err
}

// UpdateOdometer forwards an in-place odometer update. The macro answers with
// a sentence containing "updated" on success.
func (c *Client) UpdateOdometer(vehicleID, odometer, date string) error {
	log.Printf("Gateway: Updating odometer for vehicle %s to %s...", vehicleID, odometer)

	values := url.Values{}
	values.Set("type", typeUpdateOdometer)
	values.Set("vehicleID", vehicleID)
	values.Set("odometer", odometer)
	values.Set("date", date)

	text, err := c.postForm(values)
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToLower(text), "updated") {
		return fmt.Errorf("gateway did not confirm odometer update: %s", text)
	}
	return nil
}

// FixIssue marks an issue fixed. The macro matches the issue by its verbatim
// text and answers with a sentence containing "fixed" on success.
func (c *Client) FixIssue(vehicleID, issueText string) error {
	log.Printf("Gateway: Fixing issue for vehicle %s...", vehicleID)

	values := url.Values{}
	values.Set("type", typeFixIssue)
	values.Set("vehicleID", vehicleID)
	values.Set("issue", issueText)

	text, err := c.postForm(values)
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToLower(text), "fixed") {
		return fmt.Errorf("gateway did not confirm issue fix: %s", text)
	}
	return nil
}
