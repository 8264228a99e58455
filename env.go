package pitchfork

import "os"

// GetEnv returns the environment variable value given by name, or
// defaultValue if the variable isn't set.
func GetEnv(name, defaultValue string) string {
	if value, ok := os.LookupEnv(name); ok {
		return value
	}
	return defaultValue
}
