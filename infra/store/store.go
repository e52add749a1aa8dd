// Package store persists generated report workbooks with a JSON index, so
// past runs can be listed and re-downloaded without regenerating them.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

const indexFile = "index.json"

// Entry describes one persisted report run.
type Entry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	File     string    `json:"file"`
	RunAt    time.Time `json:"run_at"`
	Rows     int       `json:"rows"`
	Periods  int       `json:"periods"`
	Warnings int       `json:"warnings"`
}

// Store is a directory of report workbooks plus an index file. All methods
// are safe for a single process; the index is rewritten whole on every save,
// with an fsync before rename so a crash never leaves it torn.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report store: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save copies the workbook at src into the store and prepends an index
// entry. The entry's ID doubles as the stored file name.
func (s *Store) Save(src string, entry Entry) (Entry, error) {
	entry.ID = uuid.NewString()
	entry.File = entry.ID + ".xlsx"
	if entry.RunAt.IsZero() {
		entry.RunAt = time.Now().UTC()
	}
	if err := copyFile(src, filepath.Join(s.dir, entry.File)); err != nil {
		return Entry{}, fmt.Errorf("store workbook: %w", err)
	}
	entries, err := s.List()
	if err != nil {
		return Entry{}, err
	}
	entries = append([]Entry{entry}, entries...)
	if err := s.writeIndex(entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns the persisted runs, newest first. A missing index means an
// empty store.
func (s *Store) List() ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read report index: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse report index: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RunAt.After(entries[j].RunAt)
	})
	return entries, nil
}

// Open returns the workbook path for one run.
func (s *Store) Open(id string) (string, Entry, error) {
	entries, err := s.List()
	if err != nil {
		return "", Entry{}, err
	}
	for _, e := range entries {
		if e.ID != id {
			continue
		}
		// The index is on disk and could be edited; never let a file
		// entry escape the store directory.
		if filepath.Base(e.File) != e.File {
			return "", Entry{}, fmt.Errorf("report %s: invalid file name", id)
		}
		return filepath.Join(s.dir, e.File), e, nil
	}
	return "", Entry{}, fmt.Errorf("report %s not found", id)
}

func (s *Store) writeIndex(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := filepath.Join(s.dir, indexFile+".tmp")
	f, err := os.Create(tmp)
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
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(s.dir, indexFile))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
