package scorm

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/rand"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scormforge/scormforge/internal/model"
	"github.com/scormforge/scormforge/pkg/errors"
)

func readArchiveEntry(t *testing.T, archive []byte, path string) []byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	f, err := zr.Open(path)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return data
}

func archiveEntryNames(t *testing.T, archive []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestAssembleRoundTrip(t *testing.T) {
	a := NewAssembler(0)

	archive, err := a.Assemble(context.Background(), &AssembleInput{
		Manifest:   "<manifest/>",
		Index:      "<html/>",
		Styles:     "body {}",
		Navigation: "// nav",
		Pages: []PageArtifact{
			{Path: "pages/topic-1.html", Content: "<div/>"},
		},
		Media: []MediaSource{
			{Path: "media/logo.png", Data: []byte{0x89, 0x50, 0x4E, 0x47}},
		},
	})
	require.NoError(t, err)

	names := archiveEntryNames(t, archive)
	assert.ElementsMatch(t, []string{
		"imsmanifest.xml", "index.html", "styles/main.css",
		"scripts/navigation.js", "pages/topic-1.html", "media/logo.png",
	}, names)

	assert.Equal(t, []byte("<manifest/>"), readArchiveEntry(t, archive, "imsmanifest.xml"))
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, readArchiveEntry(t, archive, "media/logo.png"))
}

func TestAssembleEntryCompressionAndMode(t *testing.T) {
	a := NewAssembler(0)

	archive, err := a.Assemble(context.Background(), &AssembleInput{Manifest: "<manifest/>"})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, uint16(zip.Deflate), zr.File[0].Method)
	assert.Equal(t, os.FileMode(0o755), zr.File[0].Mode().Perm())
}

func TestAssembleRejectsUnsafePaths(t *testing.T) {
	a := NewAssembler(0)

	unsafe := []string{
		"../evil.js",
		"pages/../../evil.js",
		"/etc/passwd",
		`\windows\system32`,
		`C:\evil.js`,
		"",
	}

	for _, path := range unsafe {
		t.Run(path, func(t *testing.T) {
			_, err := a.Assemble(context.Background(), &AssembleInput{
				Manifest: "<manifest/>",
				Pages:    []PageArtifact{{Path: path, Content: "x"}},
			})
			require.Error(t, err)
			appErr, ok := errors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeInvalidPath, appErr.Code)
		})
	}
}

func TestAssembleRejectsUnsafeMediaPaths(t *testing.T) {
	a := NewAssembler(0)

	_, err := a.Assemble(context.Background(), &AssembleInput{
		Manifest: "<manifest/>",
		Media:    []MediaSource{{Path: "media/../../x.bin", Data: []byte{1}}},
	})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidPath, appErr.Code)
}

func TestAssembleNoContent(t *testing.T) {
	a := NewAssembler(0)

	_, err := a.Assemble(context.Background(), &AssembleInput{})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNoContent, appErr.Code)
}

func TestAssembleArtifactPrecedence(t *testing.T) {
	a := NewAssembler(0)

	archive, err := a.Assemble(context.Background(), &AssembleInput{
		Manifest: "<manifest/>",
		Styles:   "body { color: red; }",
		Artifacts: []model.GeneratedArtifact{
			{Path: "styles/main.css", Content: []byte("body { color: blue; }")},
			{Path: "extra.txt", Content: []byte("supplied")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("body { color: blue; }"), readArchiveEntry(t, archive, "styles/main.css"))
	assert.Equal(t, []byte("supplied"), readArchiveEntry(t, archive, "extra.txt"))

	// The covered path appears exactly once
	count := 0
	for _, name := range archiveEntryNames(t, archive) {
		if name == "styles/main.css" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAssembleStreamsFileBackedMedia(t *testing.T) {
	// 1 MiB of random content streamed through a 4 KiB chunk buffer
	payload := make([]byte, 1<<20)
	_, err := rand.Read(payload)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "video.bin")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	a := NewAssembler(4 * 1024)
	archive, err := a.Assemble(context.Background(), &AssembleInput{
		Manifest: "<manifest/>",
		Media:    []MediaSource{{Path: "media/video.bin", File: path}},
	})
	require.NoError(t, err)

	got := readArchiveEntry(t, archive, "media/video.bin")
	assert.Equal(t, payload, got)
}

func TestAssembleMissingMediaFile(t *testing.T) {
	a := NewAssembler(0)

	_, err := a.Assemble(context.Background(), &AssembleInput{
		Manifest: "<manifest/>",
		Media:    []MediaSource{{Path: "media/gone.bin", File: "/nonexistent/gone.bin"}},
	})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeArchiveWrite, appErr.Code)
}

func TestAssembleCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewAssembler(0)
	_, err := a.Assemble(ctx, &AssembleInput{
		Manifest: "<manifest/>",
		Media:    []MediaSource{{Path: "media/x.bin", Data: []byte{1}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestValidateEntryPath(t *testing.T) {
	assert.NoError(t, validateEntryPath("media/a.png"))
	assert.NoError(t, validateEntryPath("pages/topic-1.html"))
	assert.NoError(t, validateEntryPath("index.html"))

	assert.Error(t, validateEntryPath("/abs"))
	assert.Error(t, validateEntryPath("a/../b"))
	assert.Error(t, validateEntryPath(".."))
	assert.Error(t, validateEntryPath(`media\..\x`))
}
