// Package wire holds the constants that tie together record sizing,
// base-64 alignment, and hash placement across the codec.
package wire

const (
	// HashSize is the length in bytes of a SHA-256 digest.
	HashSize = 32

	// HashTextSize is the base-64 text length of a 32-byte digest (44
	// ASCII chars, including the trailing '=' pad).
	HashTextSize = 44

	// MaxContentTextSize is the longest a single Content entry's base-64
	// text may be (one DNS TXT string, I3).
	MaxContentTextSize = 255

	// MaxSetSize is the wire-size ceiling for one ContentSet (I2), the
	// largest value a uint16 RDATA length can carry.
	MaxSetSize = 65535

	// InitialSetSize is the running size a freshly created ContentSet
	// starts at: the base-64 text of the eventual Hash entry, without
	// its length byte (see polyseme.NewContentSet).
	InitialSetSize = HashTextSize
)
