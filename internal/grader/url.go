package grader

import "strings"

// NormalizeURL trims whitespace and prepends https:// when the URL carries
// neither an http:// nor an https:// prefix.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}
