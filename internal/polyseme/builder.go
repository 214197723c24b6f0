package polyseme

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/faanross/polyseme/internal/ahotp"
)

// BuilderMetrics receives counters as the Builder produces sets; nil is
// a valid, no-op default. Kept as a tiny interface rather than a direct
// prometheus import so the core codec stays dependency-free (spec §5:
// single-threaded, synchronous, no hidden collaborators).
type BuilderMetrics interface {
	SetFinalized(wireSize int)
	BytesConsumed(n int)
}

// Builder streams arbitrary bytes into an ordered sequence of finalized
// ContentSets. Create one with NewBuilder, feed it via Consume, and end
// the stream with Finalize. A Builder must not be used after Finalize.
type Builder struct {
	secret      []byte
	ahotpKey    ahotp.Key
	counter     uint64
	base64Tail  []byte // raw-byte tail not yet a multiple of 3
	chunk       string // base-64 text not yet split into 255-char pieces
	current     *ContentSet
	metrics     BuilderMetrics
	finalized   bool
}

// NewBuilder derives the label key from secret and opens the first
// ContentSet. secret is never logged or retained beyond what the EOF
// digest and label derivation need.
func NewBuilder(secret []byte) (*Builder, error) {
	key, err := ahotp.DeriveKey(secret)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		secret:   append([]byte(nil), secret...),
		ahotpKey: key,
	}
	b.current = NewContentSet(ahotp.Next(&b.counter, b.ahotpKey))
	return b, nil
}

// WithMetrics attaches an optional metrics sink and returns the Builder
// for chaining.
func (b *Builder) WithMetrics(m BuilderMetrics) *Builder {
	b.metrics = m
	return b
}

// Consume appends raw bytes to the stream and returns every ContentSet
// that became full as a result. Partially filled sets are retained
// internally until a later Consume or the terminal Finalize call.
func (b *Builder) Consume(input []byte) []*ContentSet {
	b.mustNotBeFinalized()
	if b.metrics != nil {
		b.metrics.BytesConsumed(len(input))
	}

	b.base64Tail = append(b.base64Tail, input...)
	alignedLen := len(b.base64Tail) - (len(b.base64Tail) % 3)
	toEncode := b.base64Tail[:alignedLen]
	b.chunk += base64.StdEncoding.EncodeToString(toEncode)
	b.base64Tail = append([]byte(nil), b.base64Tail[alignedLen:]...)

	var out []*ContentSet
	for {
		piece, ok := b.nextChunk()
		if !ok {
			break
		}
		if set := b.addContentEntry(NewContentEntry(piece)); set != nil {
			out = append(out, set)
		}
	}
	return out
}

// Finalize flushes whatever remains staged, appends the EOF sentinel,
// and emits every remaining ContentSet — the last of which carries the
// EOF entry. The Builder must not be used again afterward.
func (b *Builder) Finalize() []*ContentSet {
	b.mustNotBeFinalized()

	var out []*ContentSet

	b.chunk += base64.StdEncoding.EncodeToString(b.base64Tail)
	b.base64Tail = nil
	for {
		piece, ok := b.nextChunk()
		if !ok {
			break
		}
		if set := b.addContentEntry(NewContentEntry(piece)); set != nil {
			out = append(out, set)
		}
	}
	tail := b.chunk
	b.chunk = ""
	if tail != "" {
		if set := b.addContentEntry(NewContentEntry(tail)); set != nil {
			out = append(out, set)
		}
	}

	eofDigest := sha256.Sum256(b.secret)
	if set := b.addContentEntry(NewEOFEntry(eofDigest)); set != nil {
		panic("polyseme: EOF entry unexpectedly rolled the current set over")
	}

	b.current.Finalize()
	if b.metrics != nil {
		b.metrics.SetFinalized(b.current.Size())
	}
	out = append(out, b.current)

	b.current = nil
	b.finalized = true
	return out
}

// nextChunk splits a 255-character piece off the front of the staged
// base-64 text, if one is ready.
func (b *Builder) nextChunk() (string, bool) {
	if len(b.chunk) < 255 {
		return "", false
	}
	piece := b.chunk[:255]
	b.chunk = b.chunk[255:]
	return piece, true
}

// addContentEntry tries to add entry to the current set. If the set is
// full, it finalizes the current set, opens a fresh one with the next
// AHOTP label, adds entry there (which must succeed — a fresh set always
// has room for at least one 256-byte entry), and returns the set that
// just rolled over so the caller can collect it.
func (b *Builder) addContentEntry(entry Entry) *ContentSet {
	if ok, rejected := b.current.AddEntry(entry); !ok {
		next := NewContentSet(ahotp.Next(&b.counter, b.ahotpKey))
		if ok, _ := next.AddEntry(rejected); !ok {
			panic("polyseme: fresh ContentSet immediately full — this should never happen")
		}

		b.current.Finalize()
		if b.metrics != nil {
			b.metrics.SetFinalized(b.current.Size())
		}
		rolled := b.current
		b.current = next
		return rolled
	}
	return nil
}

func (b *Builder) mustNotBeFinalized() {
	if b.finalized {
		panic("polyseme: Builder used after Finalize")
	}
}
