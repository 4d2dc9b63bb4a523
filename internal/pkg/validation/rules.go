package validation

import (
	"math"
	"regexp"
)

// Validation rule patterns
var (
	// Academic year, e.g. "2025/2026"
	TahunAjaranPattern = `^\d{4}/\d{4}$`

	// Pertemuan range, e.g. "1-7" or "9-16"
	PertemuanRangePattern = `^\d{1,2}(-\d{1,2})?$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	TahunAjaran    *regexp.Regexp
	PertemuanRange *regexp.Regexp
}{
	TahunAjaran:    regexp.MustCompile(TahunAjaranPattern),
	PertemuanRange: regexp.MustCompile(PertemuanRangePattern),
}

// IsValidTahunAjaran reports whether s looks like an academic year.
func IsValidTahunAjaran(s string) bool {
	return CompiledPatterns.TahunAjaran.MatchString(s)
}

// IsValidPertemuanRange reports whether s is a valid meeting range.
func IsValidPertemuanRange(s string) bool {
	return CompiledPatterns.PertemuanRange.MatchString(s)
}

// IsValidWeight reports whether w is a usable component weight.
// Zero is allowed; a zero-weight component contributes nothing to the
// final score but still carries recorded raw scores.
func IsValidWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0 && w <= 100
}

// IsValidScore reports whether s is a usable raw score.
func IsValidScore(s float64) bool {
	return !math.IsNaN(s) && !math.IsInf(s, 0) && s >= 0 && s <= 100
}
