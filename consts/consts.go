// Package consts defines cross-module constants used throughout the application.
package consts

import (
	"sync"
	"time"
)

// ServiceName is the application service name
const ServiceName = "scormforge"

// Project information constants
const (
	// ProjectName is the display name of the project
	ProjectName = "SCORMForge"

	// ProjectURL is the GitHub repository URL
	ProjectURL = "https://github.com/scormforge/scormforge"
)

// Well-known archive paths inside a generated package
const (
	// ManifestPath is the IMS manifest location, required at the package root
	ManifestPath = "imsmanifest.xml"

	// IndexPath is the SCO entry point referenced by the manifest
	IndexPath = "index.html"

	// StylesPath is the generated stylesheet location
	StylesPath = "styles/main.css"

	// NavigationPath is the generated navigation script location
	NavigationPath = "scripts/navigation.js"

	// PagesPrefix is the directory for per-page HTML files
	PagesPrefix = "pages/"

	// MediaPrefix is the directory for media entries
	MediaPrefix = "media/"
)

// Build information - set via ldflags during build or programmatically
var (
	// Version is the application version
	Version = "dev"

	// BuildTime is the build timestamp
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// Server runtime information
var (
	startedAt   time.Time
	startedOnce sync.Once
)

// SetStartedAt records the server start time (can only be called once)
func SetStartedAt(t time.Time) {
	startedOnce.Do(func() {
		startedAt = t
	})
}

// GetStartedAt returns the server start time
func GetStartedAt() time.Time {
	return startedAt
}

// GetUptime returns the duration since server started
func GetUptime() time.Duration {
	if startedAt.IsZero() {
		return 0
	}
	return time.Since(startedAt)
}
