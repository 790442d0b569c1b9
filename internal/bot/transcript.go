package bot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// TranscriptStore persists conversation snapshots. Each save is write-once;
// snapshots are never mutated after writing.
type TranscriptStore interface {
	Save(t *Transcript, filename string) (string, error)
}

// FileStore dumps transcripts as indented JSON files in one directory,
// naming them by timestamp when no name is given.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Save(t *Transcript, filename string) (string, error) {
	if filename == "" {
		filename = "conversation_" + time.Now().Format("20060102_150405") + ".json"
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
