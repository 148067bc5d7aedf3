// utils/names.go
package utils

import (
	"fmt"
	"strings"
)

// SplitList splits a comma-separated sheet cell ("Red, Blue") into trimmed,
// non-empty values. Returns nil for a blank cell.
func SplitList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(cell, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SameName compares two person names the way the sheet data needs:
// trimmed and case-insensitive.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ContainsName reports whether name appears in the list under SameName rules.
func ContainsName(names []string, name string) bool {
	for _, n := range names {
		if SameName(n, name) {
			return true
		}
	}
	return false
}

// PadOdometer renders an odometer reading as the 6-digit dial string the
// front-end shows ("015000").
func PadOdometer(km int) string {
	return fmt.Sprintf("%06d", km)
}
