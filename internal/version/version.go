// Package version carries the build version, set at release time via
// -ldflags "-X github.com/wsargent/toodledo/internal/version.Version=...".
package version

var Version = "dev"
