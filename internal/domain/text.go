package domain

import "strings"

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// CoalesceFloat returns the first positive value from vals, or the fallback.
func CoalesceFloat(fallback float64, vals ...float64) float64 {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return fallback
}

// CapitalizeWord upper-cases the first letter and turns underscores into
// spaces, so "sick_leave" becomes "Sick leave".
func CapitalizeWord(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}
