package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFilename(t *testing.T) {
	valid := []string{"widgets", "Safety_Training", "proj-1", "a.b"}
	for _, name := range valid {
		assert.True(t, validateFilename(name), name)
	}

	invalid := []string{"", "..", "a..b", "a/b", `a\b`, "a\x00b", "."}
	for _, name := range invalid {
		assert.False(t, validateFilename(name), name)
	}
}

func TestAttachmentName(t *testing.T) {
	assert.Equal(t, "Intro_to_Widgets.zip", attachmentName("Intro to Widgets"))
	assert.Equal(t, "package.zip", attachmentName("???"))
	assert.Equal(t, "A-B_C.zip", attachmentName(`A-B_C"<>`))
}
