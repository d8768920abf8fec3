// Package handler provides HTTP handlers for the API.
package handler

import (
	"path/filepath"
	"strings"
)

// validateFilename validates a filename to prevent path traversal attacks
// Returns true if the filename is safe, false otherwise
func validateFilename(name string) bool {
	if name == "" {
		return false
	}

	if strings.Contains(name, "..") {
		return false
	}

	// Directory separators, both Unix and Windows
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return false
	}

	// Null bytes can be used to bypass checks
	if strings.Contains(name, "\x00") {
		return false
	}

	// Cleaning must be a no-op; catches encoded traversal attempts
	cleaned := filepath.Clean(name)
	if cleaned != name || cleaned == "." || cleaned == ".." {
		return false
	}

	return true
}

// attachmentName builds a safe download filename from a course title
func attachmentName(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	name := b.String()
	if name == "" {
		name = "package"
	}
	return name + ".zip"
}
