// Package fetcher provides the two concrete RecordFetcher
// implementations spec §2/§4.5 calls for: an in-memory table for tests
// and local round-tripping, and a live DNS TXT lookup for talking to a
// real zone. Neither type is imported by internal/polyseme — the core
// codec only ever sees the RecordFetcher interface it declares itself.
package fetcher

import (
	"sync"

	"github.com/faanross/polyseme/internal/polyseme"
)

// Memory is an in-memory table keyed by label, generalizing the Rust
// reference's `impl RecordFetcher for HashMap<String, ContentSet>` and
// the teacher's dnsserver.MemoryStorage chunk map to ordered TXT string
// lists. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]string
}

// NewMemory returns an empty table.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]string)}
}

// Put stores the TXT strings for name, overwriting any previous value.
func (m *Memory) Put(name string, strs []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[name] = strs
}

// PutSet stores a finalized ContentSet under its own label — the usual
// way a test or local round-trip populates a Memory from a Builder's
// output.
func (m *Memory) PutSet(set *polyseme.ContentSet) {
	m.Put(set.Name, set.SerializedStrings())
}

// Delete removes a label's record entirely, producing the "missing
// record" condition spec §8 tests (EmptyResult).
func (m *Memory) Delete(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, name)
}

// Record implements polyseme.RecordFetcher.
func (m *Memory) Record(name string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records[name]
}

// Len reports how many labels are currently stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
