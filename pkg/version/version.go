package version

import "fmt"

// Name is the binary name
const Name = "pdping"

// Version is the semantic version of the build, overridden via ldflags:
//
//	-ldflags "-X github.com/projectdiscovery/pdping/pkg/version.Version=v0.2.0"
var Version = "v0.1.0"

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// String returns the name and version, e.g. "pdping v0.1.0"
func String() string {
	return fmt.Sprintf("%s %s", Name, Version)
}
