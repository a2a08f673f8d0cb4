package instance

import "github.com/angelmondragon/storefront-pricing/pkg/env"

// GetID returns the process instance identifier or a default value.
func GetID() string {
	if id := env.Get(env.Prefix+"INSTANCE_ID", ""); id != "" {
		return id
	}
	return env.Get("DYNO", "local")
}
