package env

import (
	"os"
	"strings"
)

// Prefix namespaces the service's own variables.
const Prefix = "STOREFRONT_"

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// Storefront looks up Prefix+key first, then the bare key as set by
// platforms such as Heroku (PORT, LOG_FORMAT), then fallback.
func Storefront(key, fallback string) string {
	return Get(Prefix+key, Get(key, fallback))
}
