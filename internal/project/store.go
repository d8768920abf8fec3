// Package project persists course projects as JSON files on disk.
// Writes are atomic (temp file then rename) and guarded both in-process and
// cross-process, so concurrent saves to the same project never interleave.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/scormforge/scormforge/internal/model"
	"github.com/scormforge/scormforge/pkg/errors"
	"github.com/scormforge/scormforge/pkg/idgen"
	"github.com/scormforge/scormforge/pkg/logger"
)

// FileExtension is the on-disk extension for project files
const FileExtension = ".scormproj"

// Metadata identifies a stored project
type Metadata struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Created      time.Time `json:"created"`
	LastModified time.Time `json:"lastModified"`
	Path         string    `json:"path,omitempty"`
}

// Project is the unit of persistence: identity plus the full course aggregate
// and the build settings that go with it
type Project struct {
	Project      Metadata             `json:"project"`
	Course       *model.CourseRequest `json:"course"`
	ScormVersion string               `json:"scormVersion"`
	CurrentStep  string               `json:"currentStep,omitempty"`
}

// Store reads and writes project files under a single projects directory
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates a store rooted at dir. The directory is created on first
// write, not here.
func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}
}

// NewProject creates an empty project with fresh identity
func NewProject(name string) *Project {
	now := time.Now().UTC()
	return &Project{
		Project: Metadata{
			ID:           idgen.NewID(),
			Name:         name,
			Created:      now,
			LastModified: now,
		},
		Course:       &model.CourseRequest{Title: name},
		ScormVersion: "2004",
	}
}

// PathFor returns the canonical file path for a project name
func (s *Store) PathFor(name string) string {
	return filepath.Join(s.dir, sanitizeFileName(name)+FileExtension)
}

// Save writes the project to path atomically, updating its LastModified
// timestamp. Concurrent saves to the same canonical path are serialized.
func (s *Store) Save(p *Project, path string) error {
	canonical := canonicalPath(path)

	lock := s.pathLock(canonical)
	lock.Lock()
	defer lock.Unlock()

	fileLock := flock.New(canonical + ".lock")
	if err := fileLock.Lock(); err != nil {
		return errors.Wrap(errors.ErrCodeProjectStorage, "failed to acquire project file lock", err)
	}
	defer fileLock.Unlock()

	p.Project.LastModified = time.Now().UTC()
	p.Project.Path = canonical

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeProjectStorage, "failed to serialize project", err)
	}

	if err := os.MkdirAll(filepath.Dir(canonical), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeProjectStorage, "failed to create projects directory", err)
	}

	// Temp file in the same directory so the rename stays on one filesystem
	tmp := canonical + ".tmp"
	if err := writeAndSync(tmp, data); err != nil {
		return errors.Wrap(errors.ErrCodeProjectStorage, "failed to write project file", err)
	}
	if err := os.Rename(tmp, canonical); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeProjectStorage, "failed to replace project file", err)
	}

	logger.Debug("project saved",
		zap.String("project_id", p.Project.ID),
		zap.String("path", canonical))
	return nil
}

// Load reads a project file from path
func (s *Store) Load(path string) (*Project, error) {
	canonical := canonicalPath(path)

	data, err := os.ReadFile(canonical)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeProjectStorage, "project file not found: "+path)
		}
		return nil, errors.Wrap(errors.ErrCodeProjectStorage, "failed to read project file", err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeProjectStorage, "failed to parse project file", err)
	}
	p.Project.Path = canonical
	return &p, nil
}

// List returns the paths of all project files in the store directory, newest
// modification first
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeProjectStorage, "failed to read projects directory", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FileExtension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{
			path:    filepath.Join(s.dir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].modTime.After(found[j].modTime)
	})

	paths := make([]string, len(found))
	for i, c := range found {
		paths[i] = c.path
	}
	return paths, nil
}

// Delete removes a project file, its lock file, and the media folder keyed by
// the project's ID if one exists next to it
func (s *Store) Delete(path string) error {
	canonical := canonicalPath(path)

	lock := s.pathLock(canonical)
	lock.Lock()
	defer lock.Unlock()

	// Read the ID before removing the file; a corrupt project still deletes
	var projectID string
	if p, err := s.Load(canonical); err == nil {
		projectID = p.Project.ID
	}

	if err := os.Remove(canonical); err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeProjectStorage, "project file not found: "+path)
		}
		return errors.Wrap(errors.ErrCodeProjectStorage, "failed to delete project file", err)
	}
	os.Remove(canonical + ".lock")

	if projectID != "" {
		mediaDir := filepath.Join(filepath.Dir(canonical), projectID)
		if info, err := os.Stat(mediaDir); err == nil && info.IsDir() {
			if err := os.RemoveAll(mediaDir); err != nil {
				return errors.Wrap(errors.ErrCodeProjectStorage, "failed to delete project media folder", err)
			}
		}
	}

	logger.Debug("project deleted", zap.String("path", canonical))
	return nil
}

// pathLock returns the in-process mutex for a canonical path, creating it on
// first use
func (s *Store) pathLock(canonical string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[canonical]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[canonical] = lock
	}
	return lock
}

func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func writeAndSync(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sanitizeFileName strips characters that are unsafe in file names
func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
