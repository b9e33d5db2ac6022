package version

// Version is the current grepo2 release, bumped on every tag.
const Version = "3.8.0"

// FullVersion returns the version with the v prefix.
func FullVersion() string {
	return "v" + Version
}
