package mediastore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scormforge/scormforge/pkg/errors"
)

func testMeta(name string) *Metadata {
	return &Metadata{
		PageID:       "topic-1",
		Type:         "audio",
		OriginalName: name,
		MimeType:     "audio/mpeg",
	}
}

func TestPutAndGet(t *testing.T) {
	store := NewStore(t.TempDir())

	payload := []byte("mp3 bytes")
	require.NoError(t, store.Put("proj-1", "audio-0", payload, testMeta("narration.mp3")))

	got, err := store.Get("proj-1", "audio-0")
	require.NoError(t, err)
	assert.Equal(t, "audio-0", got.ID)
	assert.Equal(t, payload, got.Data)
	assert.Equal(t, "narration.mp3", got.Metadata.OriginalName)
	assert.Equal(t, "topic-1", got.Metadata.PageID)
}

func TestGetMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Get("proj-1", "gone")
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeMediaStorage, appErr.Code)
	assert.Contains(t, appErr.Message, "media not found")
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Put("proj-1", "img-0", []byte{1}, testMeta("a.png")))
	require.NoError(t, store.Delete("proj-1", "img-0"))
	require.NoError(t, store.Delete("proj-1", "img-0"))

	_, err := store.Get("proj-1", "img-0")
	assert.Error(t, err)
}

func TestListSkipsOrphanedMetadata(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.Put("proj-1", "audio-0", []byte{1}, testMeta("a.mp3")))
	require.NoError(t, store.Put("proj-1", "audio-1", []byte{2}, testMeta("b.mp3")))

	// Metadata with its data file removed out from under it
	require.NoError(t, os.Remove(filepath.Join(dir, "proj-1", "media", "audio-1.bin")))

	items, err := store.List("proj-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "audio-0", items[0].ID)
}

func TestListMissingProject(t *testing.T) {
	store := NewStore(t.TempDir())

	items, err := store.List("never-seen")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestResolve(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Put("proj-1", "audio-0", []byte("x"), testMeta("narration.mp3")))
	require.NoError(t, store.Put("proj-1", "clip-7", []byte("y"), &Metadata{PageID: "topic-2", Type: "video"}))

	sources, err := store.Resolve("proj-1", []string{"audio-0", "clip-7"})
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "media/narration.mp3", sources[0].Path)
	assert.FileExists(t, sources[0].File)
	// No original name falls back to the ID
	assert.Equal(t, "media/clip-7", sources[1].Path)
}

func TestResolveMissingID(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Put("proj-1", "audio-0", []byte("x"), testMeta("a.mp3")))

	_, err := store.Resolve("proj-1", []string{"audio-0", "missing"})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeMediaStorage, appErr.Code)
	assert.Contains(t, appErr.Message, "missing")
}

func TestValidateID(t *testing.T) {
	for _, id := range []string{"", "a/b", `a\b`, "a..b"} {
		err := validateID(id)
		assert.Error(t, err, id)
	}
	assert.NoError(t, validateID("audio-0"))
}
