// models/parse.go
package models

import (
	"strconv"
	"strings"
	"time"
)

// Sheet cells arrive as free-form strings. These helpers convert them to typed
// values with an explicit "absent" result instead of letting zero values or
// parse garbage leak into the due-date arithmetic.

var sheetDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"02/01/2006",
	"2006/01/02",
}

// ParseIntCell parses a numeric sheet cell. Blank or unparseable cells are
// reported as absent, never as 0.
func ParseIntCell(cell string) (int, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	// Sheets sometimes format numbers with separators ("15,000").
	cell = strings.ReplaceAll(cell, ",", "")
	v, err := strconv.Atoi(cell)
	if err != nil {
		// Fall back to float in case the cell came through as "15000.0".
		f, ferr := strconv.ParseFloat(cell, 64)
		if ferr != nil {
			return 0, false
		}
		return int(f), true
	}
	return v, true
}

// ParseFloatCell parses a decimal sheet cell (costs, fuel economy).
func ParseFloatCell(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	cell = strings.ReplaceAll(cell, ",", "")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseDateCell parses a calendar date cell. Unparseable dates are absent.
func ParseDateCell(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}
	for _, layout := range sheetDateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysUntil counts whole days from today until due, rounding up: a due point
// later today counts as 1, exactly now counts as 0. Matches the original
// ceil((due - today) / 86400000 ms) computation.
func DaysUntil(today, due time.Time) int {
	diff := due.Sub(today)
	days := diff.Hours() / 24
	whole := int(days)
	if float64(whole) < days {
		whole++
	}
	return whole
}
