package env

import (
	"os"
	"strconv"
	"strings"
)

// String returns the value of key, or fallback when it is unset or empty.
func String(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Bool returns key parsed with strconv.ParseBool, or fallback when it is
// unset or not a boolean.
func Bool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(String(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

// List splits a comma-separated key into trimmed, non-empty items. It
// returns fallback when the variable is unset or holds no items.
func List(key string, fallback []string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
