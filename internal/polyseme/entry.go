package polyseme

import (
	"encoding/base64"
	"fmt"

	"github.com/faanross/polyseme/internal/wire"
)

// EntryKind distinguishes the three ContentEntry variants. It is a
// closed sum — every switch over it in this package must be exhaustive.
type EntryKind int

const (
	// EntryHash carries a 32-byte SHA-256 digest covering every entry
	// that follows it in the same ContentSet. Always at position 0.
	EntryHash EntryKind = iota
	// EntryContent carries 1..=255 ASCII bytes of base-64 payload text.
	EntryContent
	// EntryEOF carries SHA-256(shared secret); its presence ends the
	// stream.
	EntryEOF
)

// Entry is a tagged value: Hash/EOF carry a 32-byte digest in Digest,
// Content carries base-64 text in Text.
type Entry struct {
	Kind   EntryKind
	Digest [32]byte // valid when Kind is EntryHash or EntryEOF
	Text   string   // valid when Kind is EntryContent
}

// NewHashEntry wraps a digest as a Hash entry.
func NewHashEntry(digest [32]byte) Entry {
	return Entry{Kind: EntryHash, Digest: digest}
}

// NewEOFEntry wraps a digest as an EOF entry.
func NewEOFEntry(digest [32]byte) Entry {
	return Entry{Kind: EntryEOF, Digest: digest}
}

// NewContentEntry wraps base-64 text as a Content entry.
func NewContentEntry(text string) Entry {
	return Entry{Kind: EntryContent, Text: text}
}

// Serialized renders the entry as it appears on the wire: the base-64
// text of the digest for Hash/EOF, or the text itself for Content.
func (e Entry) Serialized() string {
	switch e.Kind {
	case EntryHash, EntryEOF:
		return base64.StdEncoding.EncodeToString(e.Digest[:])
	case EntryContent:
		return e.Text
	default:
		panic(fmt.Sprintf("polyseme: unknown entry kind %d", e.Kind))
	}
}

// WireSize is the DNS on-the-wire cost of this entry: one length byte
// plus the serialized string's bytes.
func (e Entry) WireSize() int {
	switch e.Kind {
	case EntryHash, EntryEOF:
		return 1 + wire.HashTextSize
	case EntryContent:
		if !isASCII(e.Text) {
			panic("polyseme: non-ASCII characters in base-64 output")
		}
		return 1 + len(e.Text)
	default:
		panic(fmt.Sprintf("polyseme: unknown entry kind %d", e.Kind))
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}
