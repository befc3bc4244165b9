// Package risk classifies pools into the four ordinal risk levels shown in
// the directory.
package risk

import "strings"

const (
	Low      = "low"
	Medium   = "medium"
	High     = "high"
	VeryHigh = "very high"
)

// Levels in ascending order of risk.
var Levels = []string{Low, Medium, High, VeryHigh}

// Classify maps the two upstream risk signals to a risk level. It is total:
// any input combination, including values the upstream never documented,
// resolves to a level, with "very high" as the catch-all.
func Classify(ilRisk, exposure string) string {
	ilRisk = strings.ToLower(strings.TrimSpace(ilRisk))
	exposure = strings.ToLower(strings.TrimSpace(exposure))

	switch {
	case ilRisk == "no" && exposure == "single":
		return Low
	case ilRisk == "yes" && exposure == "single":
		return Medium
	case exposure == "multi":
		return High
	default:
		return VeryHigh
	}
}

// Valid reports whether s is one of the four defined levels.
func Valid(s string) bool {
	switch s {
	case Low, Medium, High, VeryHigh:
		return true
	}
	return false
}
