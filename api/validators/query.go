package validators

import (
	"net/http"
	"strconv"
	"strings"
)

// ParseSearchAfter reads the repeated or comma-separated search_after query
// values into sort values for the next search page.
func ParseSearchAfter(r *http.Request, key string) []any {
	var out []any
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if n, err := strconv.ParseInt(part, 10, 64); err == nil {
				out = append(out, n)
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

// ParseLimit reads an optional positive integer query value.
func ParseLimit(r *http.Request, key string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
