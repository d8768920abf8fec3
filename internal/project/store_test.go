package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scormforge/scormforge/internal/model"
	"github.com/scormforge/scormforge/pkg/errors"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	p := NewProject("Safety Training")
	p.Course.PassMark = 80
	p.Course.Topics = []model.Topic{{ID: "topic-1", Title: "Basics"}}
	path := store.PathFor(p.Project.Name)

	require.NoError(t, store.Save(p, path))

	loaded, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, p.Project.ID, loaded.Project.ID)
	assert.Equal(t, "Safety Training", loaded.Project.Name)
	assert.Equal(t, 80, loaded.Course.PassMark)
	require.Len(t, loaded.Course.Topics, 1)
	assert.Equal(t, "topic-1", loaded.Course.Topics[0].ID)
	assert.NotEmpty(t, loaded.Project.Path)
}

func TestSaveUpdatesLastModified(t *testing.T) {
	store := NewStore(t.TempDir())

	p := NewProject("Course")
	created := p.Project.LastModified
	path := store.PathFor("Course")

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, store.Save(p, path))
	assert.True(t, p.Project.LastModified.After(created))
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load(filepath.Join(t.TempDir(), "gone"+FileExtension))
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeProjectStorage, appErr.Code)
	assert.Contains(t, appErr.Message, "not found")
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad"+FileExtension)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore(dir)
	_, err := store.Load(path)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeProjectStorage, appErr.Code)
}

func TestConcurrentSavesToSamePath(t *testing.T) {
	store := NewStore(t.TempDir())
	path := store.PathFor("Shared")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			p := NewProject("Shared")
			p.Course.Title = fmt.Sprintf("Revision %d", n)
			assert.NoError(t, store.Save(p, path))
		}(i)
	}
	wg.Wait()

	// Whichever writer won, the file is complete valid JSON
	loaded, err := store.Load(path)
	require.NoError(t, err)
	assert.Contains(t, loaded.Course.Title, "Revision")
}

func TestListOrdersByModificationTime(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	for _, name := range []string{"first", "second", "third"} {
		p := NewProject(name)
		require.NoError(t, store.Save(p, store.PathFor(name)))
		time.Sleep(10 * time.Millisecond)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	paths, err := store.List()
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Contains(t, paths[0], "third")
	assert.Contains(t, paths[2], "first")
}

func TestListMissingDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"))

	paths, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestDeleteRemovesFileAndMediaFolder(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	p := NewProject("Doomed")
	path := store.PathFor("Doomed")
	require.NoError(t, store.Save(p, path))

	mediaDir := filepath.Join(dir, p.Project.ID)
	require.NoError(t, os.MkdirAll(mediaDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mediaDir, "audio-0.bin"), []byte("x"), 0o644))

	require.NoError(t, store.Delete(path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(mediaDir)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.Delete(store.PathFor("ghost"))
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeProjectStorage, appErr.Code)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "Safety_Training", sanitizeFileName("Safety Training"))
	assert.Equal(t, "abc-1_2", sanitizeFileName("a/b\\c-1_2"))
	assert.Equal(t, "untitled", sanitizeFileName("???"))
}
