package version

import "github.com/fatih/color"

// Version information for the stormatter CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	versionMajor = "0"
	versionMinor = "2"
	versionPatch = "0"

	// Version is the semantic version of the CLI, colorized when the
	// output supports it.
	Version = versionMajorColor.Sprint(versionMajor) + "." +
		versionMinorColor.Sprint(versionMinor) + "." +
		versionPatchColor.Sprint(versionPatch)

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Plain returns the semantic version without any color escapes.
func Plain() string {
	return versionMajor + "." + versionMinor + "." + versionPatch
}
