// sheets/tab_discovery.go
package sheets

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// The published (pubhtml) view of a workbook carries a tab strip at the bottom
// of the page: one anchor per sheet whose href ends in "gid=NNN". Scraping it
// lets the mirror validate configured gids and fill in missing ones, so adding
// a tab to the workbook does not require a config change.

var gidRegex = regexp.MustCompile(`gid=(\d+)`)

// DiscoverSheetTabs fetches the published workbook page and returns a map of
// tab name -> gid.
func DiscoverSheetTabs(pageURL string) (map[string]string, error) {
	log.Printf("Sheets: Discovering tabs from published page %s", pageURL)

	if pageURL == "" {
		return nil, fmt.Errorf("published workbook page URL is not configured")
	}

	client := http.Client{Timeout: 20 * time.Second}
	res, err := client.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get URL %s: %w", pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get URL %s: status code %d", pageURL, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}

	tabs := parseTabAnchors(doc)
	if len(tabs) == 0 {
		return nil, fmt.Errorf("no sheet tabs found on published page %s", pageURL)
	}

	log.Printf("Sheets: Discovered %d tabs on published page.", len(tabs))
	return tabs, nil
}

// parseTabAnchors walks the tab strip. Split out of DiscoverSheetTabs so the
// HTML handling is testable without a live fetch.
func parseTabAnchors(doc *goquery.Document) map[string]string {
	tabs := make(map[string]string)

	// The pubhtml sheet switcher is a ul with id "sheet-menu"; each li anchor
	// holds the tab name and a gid-bearing href.
	doc.Find("ul#sheet-menu li a").Each(func(i int, a *goquery.Selection) {
		name := strings.TrimSpace(a.Text())
		href, _ := a.Attr("href")
		m := gidRegex.FindStringSubmatch(href)
		if name == "" || len(m) < 2 {
			return
		}
		tabs[name] = m[1]
	})

	// Older published pages render the switcher without the id; fall back to
	// any anchor with a gid in its href.
	if len(tabs) == 0 {
		doc.Find("a").Each(func(i int, a *goquery.Selection) {
			name := strings.TrimSpace(a.Text())
			href, _ := a.Attr("href")
			m := gidRegex.FindStringSubmatch(href)
			if name == "" || len(m) < 2 {
				return
			}
			if _, seen := tabs[name]; !seen {
				tabs[name] = m[1]
			}
		})
	}

	return tabs
}

// ResolveGID returns the gid for a sheet, preferring the configured value and
// falling back to the discovered map.
func ResolveGID(configured map[string]string, discovered map[string]string, sheetName string) (string, error) {
	if gid, ok := configured[sheetName]; ok && gid != "" {
		return gid, nil
	}
	if gid, ok := discovered[sheetName]; ok && gid != "" {
		log.Printf("Sheets: Using discovered gid %s for tab %s (not in config).", gid, sheetName)
		return gid, nil
	}
	return "", fmt.Errorf("no gid configured or discoverable for sheet %s", sheetName)
}
