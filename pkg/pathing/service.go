package pathing

import "os"

// GetConfigDir returns the directory holding the TOML config files. It can
// be overridden with the GOKMP_CONFIG_DIR environment variable, mainly for
// running without root and for tests.
func GetConfigDir() string {
	if dir := os.Getenv("GOKMP_CONFIG_DIR"); dir != "" {
		return dir
	}
	return "/etc/gokmp"
}
