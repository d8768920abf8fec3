package model

// GeneratedArtifact is a pre-rendered package file. When the caller supplies
// artifacts, the assembler uses them verbatim for the paths they cover and
// internal generation is skipped for those paths. This is the seam that lets
// an external renderer bypass internal generation entirely.
type GeneratedArtifact struct {
	// Path is the archive-relative entry path
	Path string `json:"path"`
	// Content is the file content; text artifacts are UTF-8 encoded
	Content []byte `json:"content"`
	// Binary marks non-text content (media blobs)
	Binary bool `json:"binary"`
}
