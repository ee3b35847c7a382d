package helpers

import (
	"net/http"
	"strconv"
)

// Limit query parameter defaults and bounds for list endpoints.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ParseLimit reads the limit query parameter, clamping it to [1, MaxListLimit].
// Invalid or missing values fall back to DefaultListLimit.
func ParseLimit(r *http.Request) int {
	limit := DefaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			limit = v
			if limit > MaxListLimit {
				limit = MaxListLimit
			}
		}
	}
	return limit
}
