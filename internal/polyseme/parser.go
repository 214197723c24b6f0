package polyseme

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/faanross/polyseme/internal/ahotp"
)

// RecordFetcher maps a label to the ordered list of TXT strings
// published for it, or an empty slice if the record does not exist.
// Implementations must preserve publication order; no caching,
// concurrency, or retry semantics are mandated here (spec §4.5).
type RecordFetcher interface {
	Record(name string) []string
}

// ParserMetrics receives counters as the Parser consumes records; nil
// is a valid, no-op default.
type ParserMetrics interface {
	RecordFetched()
	BytesProduced(n int)
}

// Parser streams decoded bytes back out of a RecordFetcher, verifying
// each record's integrity hash and stopping at the EOF sentinel.
type Parser struct {
	fetcher     RecordFetcher
	hashedKey   [32]byte // SHA-256(secret) — the EOF sentinel to match against
	ahotpKey    ahotp.Key
	counter     uint64
	reachedEOF  bool
	base64Tail  string // base-64 text tail not yet a multiple of 4
	metrics     ParserMetrics
}

// NewParser derives the label key and EOF sentinel from secret and binds
// fetcher as the record-lookup capability.
func NewParser(secret []byte, fetcher RecordFetcher) (*Parser, error) {
	key, err := ahotp.DeriveKey(secret)
	if err != nil {
		return nil, err
	}

	return &Parser{
		fetcher:   fetcher,
		hashedKey: sha256.Sum256(secret),
		ahotpKey:  key,
	}, nil
}

// WithMetrics attaches an optional metrics sink and returns the Parser
// for chaining.
func (p *Parser) WithMetrics(m ParserMetrics) *Parser {
	p.metrics = m
	return p
}

// Read decodes and verifies one ContentSet's worth of payload, returning
// (data, nil) for each non-empty round and (nil, nil) once there is
// nothing further to emit — whether because the EOF marker was just
// observed or because a prior call already reached it. Any error leaves
// the parser's internal counter already advanced; callers must treat
// the parser as unusable afterward (spec §7's propagation policy — the
// stream has desynchronized).
//
// (nil, nil) is the sole end-of-stream signal, matching the existing
// reference behavior spec §9 flags as an open question:
// ErrAlreadyReachedEndOfFile exists but is never returned by Read
// itself — it is reserved for callers layering their own "already done"
// bookkeeping on top.
func (p *Parser) Read() ([]byte, error) {
	if p.reachedEOF {
		return nil, nil
	}

	name := ahotp.Next(&p.counter, p.ahotpKey)
	strs := p.fetcher.Record(name)
	if p.metrics != nil {
		p.metrics.RecordFetched()
	}
	if len(strs) == 0 {
		return nil, fmt.Errorf("record %q: %w", name, ErrEmptyResult)
	}

	hashExpected, err := base64.StdEncoding.DecodeString(strs[0])
	if err != nil {
		return nil, fmt.Errorf("record %q: decoding leading hash: %w: %v", name, ErrBase64Decoding, err)
	}

	ctx := sha256.New()
	var out []byte

	for _, entry := range strs[1:] {
		ctx.Write([]byte(entry))

		if len(entry) == 44 {
			data, err := base64.StdEncoding.DecodeString(entry)
			if err == nil && data32(data) == p.hashedKey {
				p.reachedEOF = true

				tail, err := base64.StdEncoding.DecodeString(p.base64Tail)
				if err != nil {
					return nil, fmt.Errorf("record %q: decoding trailing base-64: %w: %v", name, ErrBase64Decoding, err)
				}
				out = append(out, tail...)
				break
			}
		}

		p.base64Tail += entry
		alignedLen := len(p.base64Tail) - (len(p.base64Tail) % 4)
		toDecode := p.base64Tail[:alignedLen]
		data, err := base64.StdEncoding.DecodeString(toDecode)
		if err != nil {
			return nil, fmt.Errorf("record %q: decoding content entry: %w: %v", name, ErrBase64Decoding, err)
		}
		p.base64Tail = p.base64Tail[alignedLen:]
		out = append(out, data...)
	}

	if string(ctx.Sum(nil)) != string(hashExpected) {
		return nil, fmt.Errorf("record %q: %w", name, ErrHashVerification)
	}

	if len(out) == 0 {
		return nil, nil
	}

	if p.metrics != nil {
		p.metrics.BytesProduced(len(out))
	}

	return out, nil
}

// ReadToEnd drains Read until it yields no further data and returns the
// full decoded payload.
func (p *Parser) ReadToEnd() ([]byte, error) {
	var buffer []byte
	for {
		data, err := p.Read()
		if err != nil {
			return nil, err
		}
		if data == nil {
			return buffer, nil
		}
		buffer = append(buffer, data...)
	}
}

// data32 is a tiny helper so the 32-byte equality check above reads as
// one expression. A slice that is not exactly 32 bytes long (a 44-char
// Content entry without padding decodes to 33 bytes) yields the zero
// array instead of panicking.
func data32(b []byte) [32]byte {
	var out [32]byte
	if len(b) != 32 {
		return out // deliberately unequal to any real hashedKey
	}
	copy(out[:], b)
	return out
}
