// Package env reads process environment variables with fallbacks, for the few
// knobs (log format) that are needed before the typed config is loaded.
package env

import "os"

// Get returns the variable's value, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
