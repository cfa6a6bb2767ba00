// Package common provides shared utilities across the application.
package common

import (
	"strings"
)

// maxTickerLength bounds ticker input; the longest real US symbols run to
// five characters plus a share-class suffix.
const maxTickerLength = 10

// NormalizeTicker trims and uppercases a ticker string.
// Returns "" for input that cannot be a valid symbol.
func NormalizeTicker(ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" || len(ticker) > maxTickerLength {
		return ""
	}
	for _, r := range ticker {
		if !isTickerRune(r) {
			return ""
		}
	}
	return ticker
}

// isTickerRune accepts letters, digits, and the separators used by share
// classes (BRK.B, BF-B).
func isTickerRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '-':
		return true
	}
	return false
}

// NormalizeTickers normalizes a list, dropping invalid entries and duplicates
// while preserving order.
func NormalizeTickers(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	result := make([]string, 0, len(tickers))
	for _, t := range tickers {
		normalized := NormalizeTicker(t)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, normalized)
	}
	return result
}
