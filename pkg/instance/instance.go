package instance

import "os"

// GetID returns this process's instance identifier: the configured id,
// the hostname, or a fixed default.
func GetID() string {
	if id := os.Getenv("FOODCOURT_INSTANCE_ID"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "api-0"
}
