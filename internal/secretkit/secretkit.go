// Package secretkit turns an operator-supplied passphrase into the
// secret bytes the Builder/Parser consume. This is provisioning of the
// shared secret, not encryption of the payload — spec.md's Non-goals
// exclude the latter, not the former. It generalizes the teacher's
// scrypto.DeriveKey (PBKDF2-SHA256) and scrypto.GetSecurePassword
// (hidden-input prompt) from "encryption key for a stego image" to
// "shared secret for the codec".
package secretkit

import (
	"crypto/sha256"
	"fmt"
	"os"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"
)

// Iterations matches the teacher's PBKDF2 iteration count.
const Iterations = 100000

// SecretSize is how many bytes of secret material DeriveSecret produces
// — enough to seed both the AHOTP HMAC key and the EOF digest with
// plenty of entropy to spare.
const SecretSize = 32

// DeriveSecret stretches passphrase with salt via PBKDF2-SHA256,
// generalizing scrypto.DeriveKey's password-to-AES-key derivation to a
// password-to-shared-secret derivation. The same (passphrase, salt)
// pair always yields the same secret, so salt must be distributed
// alongside the zone the way a key ID would be.
func DeriveSecret(passphrase, salt []byte) []byte {
	return pbkdf2.Key(passphrase, salt, Iterations, SecretSize, sha256.New)
}

// PromptPassphrase reads a passphrase from the terminal with echo
// disabled, the same hidden-input flow as scrypto.GetSecurePassword.
func PromptPassphrase(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("secretkit: reading passphrase: %w", err)
	}
	if len(passphrase) < 8 {
		return nil, fmt.Errorf("secretkit: passphrase must be at least 8 characters")
	}
	return passphrase, nil
}
