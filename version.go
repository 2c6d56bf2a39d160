// Package tagnote carries the module version. The note model lives in
// package note, the terminal input in package editor.
package tagnote

import (
	_ "embed"
	"regexp"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version without a leading `v`.
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// UserAgent is sent by HTTP suggestion sources built by the CLI.
func UserAgent() string {
	return "tagnote/" + Version()
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}
