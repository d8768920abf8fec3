// Package mediastore keeps media binaries and their metadata on disk, keyed
// by project ID and media ID. Each item is a pair of files under the
// project's media directory: <id>.bin for the bytes and <id>.json for the
// metadata. The store resolves a course's media references to file-backed
// archive sources so large files stream into the package without loading
// fully into memory.
package mediastore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/scormforge/scormforge/consts"
	"github.com/scormforge/scormforge/internal/scorm"
	"github.com/scormforge/scormforge/pkg/errors"
	"github.com/scormforge/scormforge/pkg/logger"
)

// Metadata describes one stored media item
type Metadata struct {
	PageID       string `json:"page_id"`
	Type         string `json:"type"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type,omitempty"`
	Source       string `json:"source,omitempty"`
	EmbedURL     string `json:"embed_url,omitempty"`
	Title        string `json:"title,omitempty"`
}

// Media is one stored item with its bytes loaded
type Media struct {
	ID       string    `json:"id"`
	Data     []byte    `json:"data"`
	Metadata *Metadata `json:"metadata"`
}

// Store reads and writes media items under a root directory
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// MediaDir returns the media directory for a project, creating it if needed
func (s *Store) MediaDir(projectID string) (string, error) {
	dir := filepath.Join(s.dir, projectID, "media")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeMediaStorage, "failed to create media directory", err)
	}
	return dir, nil
}

// Put stores a media item's bytes and metadata
func (s *Store) Put(projectID, id string, data []byte, meta *Metadata) error {
	if err := validateID(id); err != nil {
		return err
	}
	dir, err := s.MediaDir(projectID)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, id+".bin"), data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeMediaStorage, "failed to write media data", err)
	}

	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeMediaStorage, "failed to serialize media metadata", err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+".json"), metaJSON, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeMediaStorage, "failed to write media metadata", err)
	}

	logger.Debug("media stored",
		zap.String("project_id", projectID),
		zap.String("media_id", id),
		zap.Int("size_bytes", len(data)))
	return nil
}

// Get loads one media item, bytes included
func (s *Store) Get(projectID, id string) (*Media, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	dir := filepath.Join(s.dir, projectID, "media")

	meta, err := readMetadata(filepath.Join(dir, id+".json"), id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, id+".bin"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMediaStorage, "failed to read media data: "+id, err)
	}

	return &Media{ID: id, Data: data, Metadata: meta}, nil
}

// Delete removes a media item's data and metadata files. Missing files are
// not an error.
func (s *Store) Delete(projectID, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	dir := filepath.Join(s.dir, projectID, "media")

	for _, path := range []string{
		filepath.Join(dir, id+".bin"),
		filepath.Join(dir, id+".json"),
	} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeMediaStorage, "failed to delete media file", err)
		}
	}
	return nil
}

// List returns all media items of a project, bytes included, ordered by ID.
// Metadata without a matching data file is skipped with a warning.
func (s *Store) List(projectID string) ([]*Media, error) {
	dir := filepath.Join(s.dir, projectID, "media")

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeMediaStorage, "failed to read media directory", err)
	}

	var items []*Media
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")

		item, err := s.Get(projectID, id)
		if err != nil {
			logger.Warn("media metadata without readable data, skipping",
				zap.String("project_id", projectID),
				zap.String("media_id", id))
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// Resolve maps media IDs to file-backed archive sources. The archive path is
// media/<original name> when the metadata carries one, media/<id> otherwise.
// A missing ID fails the whole resolution.
func (s *Store) Resolve(projectID string, ids []string) ([]scorm.MediaSource, error) {
	dir := filepath.Join(s.dir, projectID, "media")

	sources := make([]scorm.MediaSource, 0, len(ids))
	for _, id := range ids {
		if err := validateID(id); err != nil {
			return nil, err
		}
		dataPath := filepath.Join(dir, id+".bin")
		if _, err := os.Stat(dataPath); err != nil {
			return nil, errors.New(errors.ErrCodeMediaStorage, "media not found: "+id)
		}

		name := id
		if meta, err := readMetadata(filepath.Join(dir, id+".json"), id); err == nil && meta.OriginalName != "" {
			name = meta.OriginalName
		}

		sources = append(sources, scorm.MediaSource{
			Path: consts.MediaPrefix + name,
			File: dataPath,
		})
	}
	return sources, nil
}

func readMetadata(path, id string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.ErrCodeMediaStorage, "media not found: "+id)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMediaStorage, "failed to parse media metadata: "+id, err)
	}
	return &meta, nil
}

// validateID rejects IDs that would escape the media directory or collide
// with the store's own file naming
func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return errors.New(errors.ErrCodeMediaStorage, "invalid media id: "+id)
	}
	return nil
}
