// Package ahotp implements the AHOTP label generator: an HMAC-counter
// construction that turns a shared secret and a monotonically increasing
// counter into a sequence of lowercase DNS labels. Knowledge of the
// secret is required to compute the next label, so a third party who
// does not hold it cannot enumerate the zone.
package ahotp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// crockfordAlphabet is RFC 4648 base32 with the Crockford substitution —
// same technique the stdlib encourages for non-standard alphabets
// (encoding/base32.NewEncoding), since no third-party Crockford base32
// package appears anywhere in the corpus this module draws on.
const crockfordAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var crockfordEncoding = base32.NewEncoding(crockfordAlphabet).WithPadding(base32.NoPadding)

// hkdfInfo disambiguates the AHOTP label key from any other key a future
// caller might derive from the same shared secret.
const hkdfInfo = "polyseme-ahotp-label-key-v1"

// Key is the derived HMAC-SHA-256 key used to compute labels. It is
// produced once from the shared secret via DeriveKey and then reused for
// every counter advance.
type Key struct {
	mac []byte
}

// DeriveKey stretches an arbitrary-length shared secret into a
// fixed-size HMAC key via HKDF-SHA256, generalizing the teacher's
// PBKDF2-based DeriveKey to a construction appropriate for already
// high-entropy secret material rather than a human password.
func DeriveKey(secret []byte) (Key, error) {
	reader := hkdf.New(sha256.New, secret, nil, []byte(hkdfInfo))
	mac := make([]byte, sha256.Size)
	if _, err := io.ReadFull(reader, mac); err != nil {
		return Key{}, fmt.Errorf("ahotp: deriving label key: %w", err)
	}
	return Key{mac: mac}, nil
}

// Next computes HMAC(K, BE64(*counter)), Crockford-base32-encodes and
// lowercases the result, advances the counter by one, and returns the
// label. The counter never wraps: Next panics when *counter is already
// math.MaxUint64 instead of restarting the sequence.
func Next(counter *uint64, key Key) string {
	if *counter == ^uint64(0) {
		panic("ahotp: counter overflow — label sequence exhausted")
	}

	var be [8]byte
	binary.BigEndian.PutUint64(be[:], *counter)

	mac := hmac.New(sha256.New, key.mac)
	mac.Write(be[:])
	sum := mac.Sum(nil)

	*counter++

	return strings.ToLower(crockfordEncoding.EncodeToString(sum))
}
