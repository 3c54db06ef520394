// Package env has small helpers for reading process environment variables.
package env

import "os"

// Get returns the value of key, or fallback when the variable is unset or
// blank. Blank is treated as unset so an empty export does not mask the
// default.
func Get(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
