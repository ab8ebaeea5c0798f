package instance

import "github.com/angelmondragon/yahipe-backend/pkg/env"

// GetID identifies the running process in logs: the platform dyno name when
// present, then the container hostname, then "local".
func GetID() string {
	if id := env.Get("DYNO", ""); id != "" {
		return id
	}
	return env.Get("HOSTNAME", "local")
}
