// Package idgen provides ID generation utilities for the application.
// It encapsulates the ID generation implementation, making it easy to change
// the underlying ID generation strategy in the future.
package idgen

import (
	"github.com/google/uuid"
	"github.com/rs/xid"
)

// NewID generates a new globally unique, sortable identifier.
// Returns a 20-character string using xid format.
// The generated ID is:
// - Globally unique
// - Sortable by creation time
// - URL-safe (base32 encoded)
// - 20 characters long
func NewID() string {
	return xid.New().String()
}

// NewBuildID generates a unique ID for package build requests.
// Currently an alias for NewID, but can be customized in the future
// (e.g., adding a prefix like "bld_" for better identification).
func NewBuildID() string {
	return NewID()
}

// NewRequestID generates a unique ID for request tracking.
func NewRequestID() string {
	return NewID()
}

// NewPackageIdentifier generates the manifest identifier for a SCORM package.
// Uses a random UUID prefixed with "course-" so identifiers are valid XML
// NMTOKEN values and recognizably course-scoped in LMS logs. This is the one
// non-deterministic field in an otherwise reproducible build.
func NewPackageIdentifier() string {
	return "course-" + uuid.NewString()
}
