// Package version exposes build-time version metadata for the SDK and
// its CLI.
//
// Version, Revision and BuiltAt are set with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/orgbase/orgcore/version.Version=1.2.3 \
//	  -X github.com/orgbase/orgcore/version.Revision=abc123 \
//	  -X 'github.com/orgbase/orgcore/version.BuiltAt=$(date)'"
//
// When they are not set, GetVersionInfo falls back to the module build
// info the Go toolchain embeds in the binary.
package version
