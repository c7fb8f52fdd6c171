package hawk

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
	"hash"
)

// Cryptographer supplies the primitives the protocol is built on: HMAC
// signing, streaming digests, random bytes, and constant-time comparison.
//
// A Cryptographer is injected where it is needed (NewKey, NewPayloadHasher,
// NewRequestState) rather than installed process-wide, so different
// backends can coexist. Implementations must be safe for concurrent use.
type Cryptographer interface {
	// HMAC computes the HMAC of message under key using the given digest
	// algorithm.
	HMAC(algorithm Algorithm, key, message []byte) ([]byte, error)

	// Hasher returns a new streaming digest for the given algorithm.
	Hasher(algorithm Algorithm) (hash.Hash, error)

	// RandBytes fills buf with cryptographically secure random bytes.
	RandBytes(buf []byte) error

	// ConstantTimeEqual reports whether a and b are equal without leaking
	// the position of the first differing byte through timing.
	ConstantTimeEqual(a, b []byte) bool
}

// DefaultCryptographer is the standard-library backend, used whenever a
// nil Cryptographer is supplied.
var DefaultCryptographer Cryptographer = stdCryptographer{}

type stdCryptographer struct{}

func hashConstructor(algorithm Algorithm) (func() hash.Hash, error) {
	switch algorithm {
	case SHA256:
		return sha256.New, nil
	case SHA384:
		return sha512.New384, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, algorithm)
	}
}

func (stdCryptographer) HMAC(algorithm Algorithm, key, message []byte) ([]byte, error) {
	ctor, err := hashConstructor(algorithm)
	if err != nil {
		return nil, err
	}

	h := hmac.New(ctor, key)
	h.Write(message)

	return h.Sum(nil), nil
}

func (stdCryptographer) Hasher(algorithm Algorithm) (hash.Hash, error) {
	ctor, err := hashConstructor(algorithm)
	if err != nil {
		return nil, err
	}

	return ctor(), nil
}

func (stdCryptographer) RandBytes(buf []byte) error {
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrCrypto, err)
	}

	return nil
}

func (stdCryptographer) ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
