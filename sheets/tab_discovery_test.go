// sheets/tab_discovery_test.go
package sheets

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pubhtmlSample = `
<html><body>
<div id="sheets-viewport"></div>
<ul id="sheet-menu">
  <li id="sheet-button-0"><a href="#gid=0">Vehicles</a></li>
  <li id="sheet-button-1"><a href="#gid=163742891">ServiceIntervals</a></li>
  <li id="sheet-button-2"><a href="#gid=99120045">MaintenanceRecords</a></li>
</ul>
</body></html>`

func TestParseTabAnchors_SheetMenu(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pubhtmlSample))
	require.NoError(t, err)

	tabs := parseTabAnchors(doc)

	assert.Equal(t, map[string]string{
		"Vehicles":           "0",
		"ServiceIntervals":   "163742891",
		"MaintenanceRecords": "99120045",
	}, tabs)
}

const pubhtmlLegacySample = `
<html><body>
<a href="/pub?output=html&gid=42">Vehicles</a>
<a href="/pub?output=html&gid=43">Documents</a>
<a href="/other">Not a tab</a>
</body></html>`

func TestParseTabAnchors_FallbackWithoutSheetMenu(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pubhtmlLegacySample))
	require.NoError(t, err)

	tabs := parseTabAnchors(doc)

	assert.Equal(t, map[string]string{
		"Vehicles":  "42",
		"Documents": "43",
	}, tabs)
}

func TestResolveGID(t *testing.T) {
	configured := map[string]string{"Vehicles": "7"}
	discovered := map[string]string{"Vehicles": "0", "Documents": "43"}

	gid, err := ResolveGID(configured, discovered, "Vehicles")
	require.NoError(t, err)
	assert.Equal(t, "7", gid, "configured gid wins over discovery")

	gid, err = ResolveGID(configured, discovered, "Documents")
	require.NoError(t, err)
	assert.Equal(t, "43", gid)

	_, err = ResolveGID(configured, discovered, "IssueReports")
	assert.Error(t, err)
}
