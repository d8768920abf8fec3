package scorm

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/scormforge/scormforge/consts"
	"github.com/scormforge/scormforge/internal/model"
	"github.com/scormforge/scormforge/pkg/errors"
)

// MediaSource is one media entry for the archive: either in-memory bytes or
// an on-disk file streamed in chunks
type MediaSource struct {
	// Path is the archive entry path, conventionally under media/
	Path string
	// Data holds in-memory content; written directly when set
	Data []byte
	// File is an on-disk path; streamed in bounded chunks when Data is nil
	File string
}

// AssembleInput carries everything the assembler writes. Artifacts take
// precedence over the generated fields for the paths they cover.
type AssembleInput struct {
	Manifest   string
	Index      string
	Styles     string
	Navigation string
	Pages      []PageArtifact
	Artifacts  []model.GeneratedArtifact
	Media      []MediaSource
}

// Assembler writes the package archive. It is a sequential single writer;
// the generators that feed it may run concurrently.
type Assembler struct {
	chunkSize int
}

// NewAssembler creates an assembler with the given streaming chunk size
func NewAssembler(chunkSize int) *Assembler {
	if chunkSize <= 0 {
		chunkSize = 64 * 1024
	}
	return &Assembler{chunkSize: chunkSize}
}

type textEntry struct {
	path    string
	content []byte
}

// Assemble writes all entries into a single deflate archive and returns the
// finished bytes. Every entry path is checked against archive-slip before
// anything is written for it. An input with no entries at all is rejected.
func (a *Assembler) Assemble(ctx context.Context, in *AssembleInput) ([]byte, error) {
	entries := a.collectText(in)
	if len(entries) == 0 && len(in.Media) == 0 {
		return nil, errors.ErrNoContent()
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		if err := validateEntryPath(e.path); err != nil {
			return nil, err
		}
		w, err := a.newEntry(zw, e.path)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(e.content); err != nil {
			return nil, errors.ErrArchiveWrite("failed to write "+e.path, err)
		}
	}

	for _, m := range in.Media {
		if err := ctx.Err(); err != nil {
			return nil, errors.ErrArchiveWrite("build cancelled", err)
		}
		if err := validateEntryPath(m.Path); err != nil {
			return nil, err
		}
		w, err := a.newEntry(zw, m.Path)
		if err != nil {
			return nil, err
		}
		if m.Data != nil {
			if _, err := w.Write(m.Data); err != nil {
				return nil, errors.ErrArchiveWrite("failed to write "+m.Path, err)
			}
			continue
		}
		if err := a.streamFile(ctx, w, m.File, m.Path); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, errors.ErrArchiveWrite("failed to finalize archive", err)
	}
	return buf.Bytes(), nil
}

// collectText merges the generated artifacts with any caller-supplied ones.
// Caller artifacts win per path; generated content fills the remainder.
func (a *Assembler) collectText(in *AssembleInput) []textEntry {
	var entries []textEntry
	add := func(path, content string) {
		if content != "" {
			entries = append(entries, textEntry{path: path, content: []byte(content)})
		}
	}

	add(consts.ManifestPath, in.Manifest)
	add(consts.IndexPath, in.Index)
	add(consts.StylesPath, in.Styles)
	add(consts.NavigationPath, in.Navigation)
	for _, p := range in.Pages {
		add(p.Path, p.Content)
	}

	if len(in.Artifacts) == 0 {
		return entries
	}

	override := make(map[string][]byte, len(in.Artifacts))
	for _, art := range in.Artifacts {
		override[art.Path] = art.Content
	}
	kept := entries[:0]
	for _, e := range entries {
		if _, covered := override[e.path]; !covered {
			kept = append(kept, e)
		}
	}
	entries = kept
	for _, art := range in.Artifacts {
		entries = append(entries, textEntry{path: art.Path, content: art.Content})
	}
	return entries
}

// newEntry opens one archive entry with deflate compression and fixed
// permission bits for cross-platform LMS compatibility
func (a *Assembler) newEntry(zw *zip.Writer, path string) (io.Writer, error) {
	header := &zip.FileHeader{
		Name:   path,
		Method: zip.Deflate,
	}
	header.SetMode(0o755)
	w, err := zw.CreateHeader(header)
	if err != nil {
		return nil, errors.ErrArchiveWrite("failed to create entry "+path, err)
	}
	return w, nil
}

// streamFile copies an on-disk file into the archive in bounded chunks,
// checking for cancellation between chunks so a cancelled build does not hold
// large file handles open.
func (a *Assembler) streamFile(ctx context.Context, w io.Writer, filePath, entryPath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return errors.ErrArchiveWrite("failed to open media file for "+entryPath, err)
	}
	defer f.Close()

	buf := make([]byte, a.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return errors.ErrArchiveWrite("build cancelled", err)
		}
		n, readErr := f.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return errors.ErrArchiveWrite("failed to write "+entryPath, err)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return errors.ErrArchiveWrite("failed to read media file for "+entryPath, readErr)
		}
	}
}

// validateEntryPath is the archive-slip defense: absolute paths and any path
// containing a parent-directory component are rejected outright.
func validateEntryPath(path string) error {
	if path == "" {
		return errors.ErrInvalidPath(path)
	}
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\") {
		return errors.ErrInvalidPath(path)
	}
	// Windows drive or UNC forms are absolute too
	if len(path) > 1 && path[1] == ':' {
		return errors.ErrInvalidPath(path)
	}
	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return errors.ErrInvalidPath(path)
		}
	}
	return nil
}
