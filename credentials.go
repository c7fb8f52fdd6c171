package hawk

// Key is a shared secret bound to a digest algorithm and a cryptographic
// backend. The secret is copied at construction and never exposed again;
// the only operation a Key offers is signing.
//
// Any byte sequence can serve as a secret, but each digest algorithm has a
// suggested key length and passwords should not be used as keys.
type Key struct {
	secret    []byte
	algorithm Algorithm
	crypto    Cryptographer
}

// NewKey creates a signing key from secret using the given algorithm.
// The algorithm is fixed for the lifetime of the key. A nil Cryptographer
// selects DefaultCryptographer.
func NewKey(secret []byte, algorithm Algorithm, c Cryptographer) (*Key, error) {
	if c == nil {
		c = DefaultCryptographer
	}

	// Reject unsupported algorithms up front rather than on first use.
	if _, err := c.Hasher(algorithm); err != nil {
		return nil, err
	}

	dup := make([]byte, len(secret))
	copy(dup, secret)

	return &Key{secret: dup, algorithm: algorithm, crypto: c}, nil
}

// Algorithm returns the digest algorithm fixed at construction.
func (k *Key) Algorithm() Algorithm {
	return k.algorithm
}

// Sign computes the HMAC of message under this key. The result length is
// the digest output length of the key's algorithm.
func (k *Key) Sign(message []byte) (Mac, error) {
	mac, err := k.crypto.HMAC(k.algorithm, k.secret, message)
	if err != nil {
		return nil, err
	}

	return Mac(mac), nil
}

// Credentials pair a client identifier with its signing key. The id is
// transmitted in headers and bewits; the key never is.
type Credentials struct {
	ID  string
	Key *Key
}
