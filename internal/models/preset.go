package models

import (
	"fmt"
	"strconv"
	"strings"
)

// AutoPresetPrefix starts every auto-generated preset name.
const AutoPresetPrefix = "Save "

// SavedFilterPreset is a named FilterCriteria snapshot kept in client storage.
// Custom is set once the user renames it, which excludes it from renumbering.
type SavedFilterPreset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom,omitempty"`
	FilterCriteria
}

// AutoPresetName formats the auto-generated name for n.
func AutoPresetName(n int) string {
	return fmt.Sprintf("%s%d", AutoPresetPrefix, n)
}

// ParseAutoPresetName returns N for names of the form "Save N" with N > 0.
func ParseAutoPresetName(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, AutoPresetPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 || strconv.Itoa(n) != rest {
		return 0, false
	}
	return n, true
}
