package polyseme

import (
	"crypto/sha256"
	"hash"

	"github.com/faanross/polyseme/internal/wire"
)

// ContentSet is a record-sized container: a label plus an ordered list
// of entries whose first element is always a Hash, covering every entry
// that follows. Mutating it after Finalize is a programmer error.
type ContentSet struct {
	Name    string
	Entries []Entry

	size        int
	hashContext hash.Hash // nil once finalized
	finalized   bool
}

// NewContentSet starts a fresh set for the given label: size reserves
// space for the eventual Hash entry's base-64 text but, deliberately,
// not for its length byte (see §4.2 in the spec), so Size is always one
// byte below the set's full wire cost.
func NewContentSet(name string) *ContentSet {
	return &ContentSet{
		Name:        name,
		Entries:     []Entry{NewHashEntry([32]byte{})},
		size:        wire.InitialSetSize,
		hashContext: sha256.New(),
	}
}

// AddEntry appends entry if doing so keeps the set within the 65535-byte
// wire cap (I2). On success it also feeds the hash context (the leading
// Hash placeholder is never fed — only entries appended after it are).
// On rejection it returns the untouched entry so the caller can open a
// new ContentSet and retry there.
func (cs *ContentSet) AddEntry(entry Entry) (ok bool, rejected Entry) {
	if cs.size+entry.WireSize() > wire.MaxSetSize {
		return false, entry
	}

	cs.size += entry.WireSize()
	cs.hashContext.Write([]byte(entry.Serialized()))
	cs.Entries = append(cs.Entries, entry)
	return true, Entry{}
}

// Finalize snapshots the hash context into entries[0], discards the
// context, and freezes the set. Panics if entries[0] is not a Hash
// entry, which would indicate the set was constructed incorrectly.
func (cs *ContentSet) Finalize() {
	if cs.finalized {
		panic("polyseme: ContentSet finalized twice")
	}
	if cs.Entries[0].Kind != EntryHash {
		panic("polyseme: first entry of ContentSet must be a hash")
	}

	var digest [32]byte
	copy(digest[:], cs.hashContext.Sum(nil))
	cs.Entries[0] = NewHashEntry(digest)
	cs.hashContext = nil
	cs.finalized = true
}

// Size reports the set's running wire-size total.
func (cs *ContentSet) Size() int {
	return cs.size
}

// Finalized reports whether Finalize has already run.
func (cs *ContentSet) Finalized() bool {
	return cs.finalized
}

// SerializedStrings renders every entry's wire text, in order — the
// exact TXT string list a record publisher or zone-file writer emits.
func (cs *ContentSet) SerializedStrings() []string {
	out := make([]string, len(cs.Entries))
	for i, e := range cs.Entries {
		out[i] = e.Serialized()
	}
	return out
}
