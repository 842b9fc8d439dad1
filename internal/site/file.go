package site

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/litescript/ls-astrotool/internal/angle"
)

// FileStore keeps sites in a TOML document. The file is read on every call
// so edits made outside the process are picked up. A missing file is an
// empty store.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

type siteRecord struct {
	Name      string   `toml:"name"`
	Latitude  string   `toml:"latitude"`
	Longitude string   `toml:"longitude"`
	Elevation *float64 `toml:"elevation,omitempty"`
}

type siteDocument struct {
	Sites []siteRecord `toml:"site"`
}

// Get returns the site called name.
func (s *FileStore) Get(name string) (Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return Location{}, err
	}
	return m.Get(name)
}

// Put adds or replaces a site and rewrites the file.
func (s *FileStore) Put(loc Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return err
	}
	if err := m.Put(loc); err != nil {
		return err
	}
	return s.save(m)
}

// Delete removes a site and rewrites the file.
func (s *FileStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return err
	}
	if err := m.Delete(name); err != nil {
		return err
	}
	return s.save(m)
}

// List returns every stored site sorted by name.
func (s *FileStore) List() ([]Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return nil, err
	}
	return m.List()
}

func (s *FileStore) load() (*MemoryStore, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewMemoryStore(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var doc siteDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}

	m := NewMemoryStore()
	for _, rec := range doc.Sites {
		elev := math.NaN()
		if rec.Elevation != nil {
			elev = *rec.Elevation
		}
		loc, err := Parse(rec.Name, rec.Latitude, rec.Longitude, elev)
		if err != nil {
			return nil, fmt.Errorf("site %q in %s: %w", rec.Name, s.path, err)
		}
		m.sites[normalizeName(loc.Name)] = loc
	}
	return m, nil
}

func (s *FileStore) save(m *MemoryStore) error {
	locs, _ := m.List()
	doc := siteDocument{Sites: make([]siteRecord, 0, len(locs))}
	for _, loc := range locs {
		rec := siteRecord{
			Name:      loc.Name,
			Latitude:  colonDMS(loc.Latitude),
			Longitude: colonDMS(loc.Longitude),
		}
		if loc.HasElevation() {
			e := loc.Elevation
			rec.Elevation = &e
		}
		doc.Sites = append(doc.Sites, rec)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling sites: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// colonDMS renders d in the ±dd:mm:ss.ssss form ParseDMS reads back.
func colonDMS(d angle.DMS) string {
	sign := '+'
	if d.Negative() {
		sign = '-'
	}
	r := d.Round(4)
	return fmt.Sprintf("%c%02d:%02d:%07.4f", sign, r.Deg, r.Min, r.Sec)
}
