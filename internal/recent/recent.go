package recent

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// MaxEntries bounds the MRU list; the oldest entry is evicted past it.
const MaxEntries = 10

// Store is a most-recently-used list of opened file paths, most recent
// first. Re-adding an existing path moves it to the front.
type Store struct {
	Entries []string `json:"entries"`
	path    string
}

func storePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vuit", "recent.json")
}

func Load() (*Store, error) {
	return loadFrom(storePath())
}

func loadFrom(path string) (*Store, error) {
	s := &Store{path: path, Entries: []string{}}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	if err := json.Unmarshal(data, s); err != nil {
		// corrupt store degrades to empty, not fatal
		s.Entries = []string{}
		return s, nil
	}
	s.path = path
	if len(s.Entries) > MaxEntries {
		s.Entries = s.Entries[:MaxEntries]
	}
	return s, nil
}

func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Add moves path to the front, inserting it if absent and evicting the
// oldest entry past MaxEntries.
func (s *Store) Add(path string) {
	for i, e := range s.Entries {
		if e == path {
			copy(s.Entries[1:i+1], s.Entries[:i])
			s.Entries[0] = path
			return
		}
	}
	s.Entries = append([]string{path}, s.Entries...)
	if len(s.Entries) > MaxEntries {
		s.Entries = s.Entries[:MaxEntries]
	}
}

// Remove drops the entry at index i, ignoring out-of-range indexes.
func (s *Store) Remove(i int) {
	if i < 0 || i >= len(s.Entries) {
		return
	}
	s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
}
