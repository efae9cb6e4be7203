package utils

import "strings"

// IsLikelyWebsite is the cheap validity check applied before a fetched
// website URL is written back. It filters the obvious junk values the
// places API occasionally returns in that field.
func IsLikelyWebsite(s string) bool {
	if len(s) <= 4 {
		return false
	}
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "www.")
}
