package hawk

import "hash"

// PayloadHasher computes the hash attribute that binds a request or
// response body to a MAC. The digest is seeded with a fixed preamble and
// the declared content type, so a hash computed under one content type
// cannot validate a payload served under another.
//
// The payload bytes are hashed exactly as supplied; no trailing newline is
// appended before the digest is finalized.
type PayloadHasher struct {
	h        hash.Hash
	finished bool
}

// NewPayloadHasher creates a hasher for the given content type. The
// content type should be lower-case and should not include parameters.
// The algorithm is normally the same as the one used by the credentials
// signing the request. A nil Cryptographer selects DefaultCryptographer.
func NewPayloadHasher(contentType string, algorithm Algorithm, c Cryptographer) (*PayloadHasher, error) {
	if c == nil {
		c = DefaultCryptographer
	}

	h, err := c.Hasher(algorithm)
	if err != nil {
		return nil, err
	}

	h.Write([]byte("hawk.1.payload\n"))
	h.Write([]byte(contentType))
	h.Write([]byte("\n"))

	return &PayloadHasher{h: h}, nil
}

// Update feeds the next chunk of the payload. Chunk boundaries do not
// affect the result, but chunk order does.
func (p *PayloadHasher) Update(data []byte) error {
	if p.finished {
		return ErrHasherFinished
	}

	p.h.Write(data)

	return nil
}

// Finish returns the digest and consumes the hasher. Any further Update or
// Finish call returns ErrHasherFinished.
func (p *PayloadHasher) Finish() ([]byte, error) {
	if p.finished {
		return nil, ErrHasherFinished
	}

	p.finished = true

	return p.h.Sum(nil), nil
}

// HashPayload hashes a complete payload in one call.
func HashPayload(contentType string, algorithm Algorithm, payload []byte, c Cryptographer) ([]byte, error) {
	p, err := NewPayloadHasher(contentType, algorithm, c)
	if err != nil {
		return nil, err
	}

	if err := p.Update(payload); err != nil {
		return nil, err
	}

	return p.Finish()
}
