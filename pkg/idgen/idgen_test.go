package idgen

import (
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	id1 := NewID()
	id2 := NewID()

	if len(id1) != 20 {
		t.Errorf("NewID() length = %d, want 20", len(id1))
	}
	if id1 == id2 {
		t.Error("NewID() should generate unique IDs")
	}
}

func TestNewPackageIdentifier(t *testing.T) {
	id1 := NewPackageIdentifier()
	id2 := NewPackageIdentifier()

	if !strings.HasPrefix(id1, "course-") {
		t.Errorf("NewPackageIdentifier() = %q, want course- prefix", id1)
	}
	if id1 == id2 {
		t.Error("NewPackageIdentifier() should be unique per build")
	}
	// No XML-unsafe characters
	if strings.ContainsAny(id1, "<>&\"'") {
		t.Errorf("NewPackageIdentifier() = %q contains XML-unsafe characters", id1)
	}
}

func TestAliases(t *testing.T) {
	if NewBuildID() == "" || NewRequestID() == "" {
		t.Error("alias generators should return non-empty IDs")
	}
}
