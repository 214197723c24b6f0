// Package store provides a durable record store that stands in for an
// authoritative DNS zone — publishing a Builder's output somewhere a
// Parser can later read it back from, without requiring a live
// nameserver. It generalizes the teacher's dnsserver.Storage /
// MemoryStorage / FileStorage from arbitrary chunk-name-to-string maps
// to ordered ContentSet label -> TXT-string-list records.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/faanross/polyseme/internal/polyseme"
)

// Record is one published ContentSet, serialized for storage: the
// label and its ordered TXT strings in publication order.
type Record struct {
	Name      string    `json:"name"`
	Strings   []string  `json:"strings"`
	StoredAt  time.Time `json:"stored_at"`
}

// Store is the persistence interface a sender publishes through and a
// receiver's RecordFetcher reads from.
type Store interface {
	Put(name string, strings []string) error
	Get(name string) ([]string, bool)
	List() ([]Record, error)
}

// PutSet stores a finalized ContentSet under its own label — a small
// convenience every Store implementation gets for free.
func PutSet(s Store, set *polyseme.ContentSet) error {
	return s.Put(set.Name, set.SerializedStrings())
}

// MemoryStore keeps every record in RAM, generalizing the teacher's
// dnsserver.MemoryStorage.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (ms *MemoryStore) Put(name string, strings []string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.records[name] = Record{Name: name, Strings: strings, StoredAt: time.Now()}
	return nil
}

func (ms *MemoryStore) Get(name string) ([]string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	rec, ok := ms.records[name]
	if !ok {
		return nil, false
	}
	return rec.Strings, true
}

func (ms *MemoryStore) List() ([]Record, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	out := make([]Record, 0, len(ms.records))
	for _, rec := range ms.records {
		out = append(out, rec)
	}
	return out, nil
}

// Record implements polyseme.RecordFetcher directly, so a MemoryStore
// can back a Parser without any adapter.
func (ms *MemoryStore) Record(name string) []string {
	strs, _ := ms.Get(name)
	return strs
}

// FileStore adds JSON-on-disk persistence on top of a MemoryStore,
// generalizing the teacher's dnsserver.FileStorage: every Put is
// followed by an atomic temp-file-then-rename save, the same pattern
// the teacher uses to survive a crash mid-write.
type FileStore struct {
	*MemoryStore
	path string
	mu   sync.Mutex
}

// NewFileStore opens (or creates) a FileStore backed by path. An
// existing file is loaded immediately; a missing one starts empty.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{MemoryStore: NewMemoryStore(), path: path}
	if err := fs.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("store: loading %s: %w", path, err)
	}
	return fs, nil
}

func (fs *FileStore) Put(name string, strings []string) error {
	if err := fs.MemoryStore.Put(name, strings); err != nil {
		return err
	}
	return fs.save()
}

func (fs *FileStore) save() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	records, _ := fs.MemoryStore.List()
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshaling records: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: writing temp file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("store: renaming temp file: %w", err)
	}
	return nil
}

func (fs *FileStore) load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path)
	if err != nil {
		return err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("store: unmarshaling records: %w", err)
	}

	fs.MemoryStore.mu.Lock()
	defer fs.MemoryStore.mu.Unlock()
	for _, rec := range records {
		fs.MemoryStore.records[rec.Name] = rec
	}
	return nil
}
