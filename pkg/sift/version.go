// Package sift holds project-wide metadata shared by the CLI and build
// tooling.
package sift

// Version is the current sift release.
const Version = "0.1.0"
