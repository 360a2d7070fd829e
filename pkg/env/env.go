package env

import "os"

// Get reads key from the process environment, falling back to def when the
// variable is unset or empty.
func Get(key, def string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	return v
}
