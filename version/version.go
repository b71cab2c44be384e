package version

// Version is stamped at build time via -ldflags "-X grove/version.Version=...".
var Version = "dev"

// Get returns the version string, never empty.
func Get() string {
	if Version == "" {
		return "dev"
	}
	return Version
}
