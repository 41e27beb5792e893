// Package digest names the byte hashing primitives used to derive task identifiers.
package digest

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Func creates a fresh hash.
type Func func() hash.Hash

// ErrUnknown is returned by Lookup for unsupported digest names.
var ErrUnknown = errors.New("digest: unknown")

const (
	NameSHA256  = "sha256"
	NameBLAKE2b = "blake2b"
	NameSHA3    = "sha3"
)

// SHA256 is the default digest.
func SHA256() hash.Hash {
	return sha256.New()
}

// BLAKE2b256 returns an unkeyed 256-bit BLAKE2b hash.
func BLAKE2b256() hash.Hash {
	// New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)
	return h
}

// SHA3256 returns a SHA3-256 hash.
func SHA3256() hash.Hash {
	return sha3.New256()
}

// Names returns the supported digest names.
func Names() []string {
	return []string{NameSHA256, NameBLAKE2b, NameSHA3}
}

// Lookup returns the digest registered under name (case-insensitive).
func Lookup(name string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameSHA256, "":
		return SHA256, nil
	case NameBLAKE2b:
		return BLAKE2b256, nil
	case NameSHA3:
		return SHA3256, nil
	}
	return nil, fmt.Errorf("%w: %q, supported: %s", ErrUnknown, name, strings.Join(Names(), ", "))
}
