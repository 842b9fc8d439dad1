// Package version provides build and version information.
package version

import "fmt"

// Version is the current application version.
const Version = "0.3.0"

// Commit is set at build time with -ldflags "-X .../version.Commit=<sha>".
var Commit = ""

// String returns the version with the commit when known.
func String() string {
	if Commit == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, Commit)
}

// Milestones:
// 0.3.0 - Observing plans, airmass map TUI, program files
// 0.2.0 - Keplerian ephemeris for the Sun, Moon and planets, bright-star catalog
// 0.1.0 - Initial release: angle conversion, sidereal time, horizon transforms, rise/set
