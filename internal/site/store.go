package site

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Store keeps named observing sites. Names are matched case-insensitively.
type Store interface {
	Get(name string) (Location, error)
	Put(loc Location) error
	Delete(name string) error
	List() ([]Location, error)
}

// Lookup finds name in s, falling back to the built-in sites.
func Lookup(s Store, name string) (Location, error) {
	if s != nil {
		loc, err := s.Get(name)
		if err == nil {
			return loc, nil
		}
		if !errors.Is(err, ErrSiteNotFound) {
			return Location{}, err
		}
	}
	key := normalizeName(name)
	for _, loc := range Builtin {
		if normalizeName(loc.Name) == key {
			return loc, nil
		}
	}
	return Location{}, notFound(name)
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	sites map[string]Location
}

// NewMemoryStore returns a store holding the given sites.
func NewMemoryStore(seed ...Location) *MemoryStore {
	s := &MemoryStore{sites: make(map[string]Location, len(seed))}
	for _, loc := range seed {
		s.sites[normalizeName(loc.Name)] = loc
	}
	return s
}

// Get returns the site called name.
func (s *MemoryStore) Get(name string) (Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.sites[normalizeName(name)]
	if !ok {
		return Location{}, notFound(name)
	}
	return loc, nil
}

// Put adds or replaces a site.
func (s *MemoryStore) Put(loc Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites[normalizeName(loc.Name)] = loc
	return nil
}

// Delete removes the site called name.
func (s *MemoryStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizeName(name)
	if _, ok := s.sites[key]; !ok {
		return notFound(name)
	}
	delete(s.sites, key)
	return nil
}

// List returns every site sorted by name.
func (s *MemoryStore) List() ([]Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Location, 0, len(s.sites))
	for _, loc := range s.sites {
		out = append(out, loc)
	}
	sortByName(out)
	return out, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func notFound(name string) error {
	return fmt.Errorf("%w: %q", ErrSiteNotFound, name)
}

func sortByName(locs []Location) {
	sort.Slice(locs, func(i, j int) bool {
		return normalizeName(locs[i].Name) < normalizeName(locs[j].Name)
	})
}
