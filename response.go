package hawk

import (
	"fmt"
	"strings"
	"time"
)

// ResponseConfig describes the server's response to one signed request for
// the purposes of the Server-Authorization header. The request's method,
// host, port, path, timestamp and nonce are all covered by the response
// MAC, binding the response to the exact request it answers.
//
// Hash is the response payload hash, or nil when the payload is not
// covered. Ext is the response's own optional application data and is
// independent of the request's ext.
type ResponseConfig struct {
	Method string
	Host   string
	Port   uint16
	Path   string
	TS     time.Time
	Nonce  string
	Hash   []byte
	Ext    string
}

// Response is a validated, immutable response description.
type Response struct {
	cfg ResponseConfig
}

// NewResponse validates cfg and returns the Response for it. On the client
// side, derive cfg with Request.ResponseConfig; on the server side, fill it
// from the validated request header.
func NewResponse(cfg ResponseConfig) (*Response, error) {
	if cfg.Method == "" {
		return nil, fmt.Errorf("%w: empty method", ErrInvalidRequest)
	}

	if cfg.Host == "" || strings.ContainsAny(cfg.Host, " \t\r\n") {
		return nil, fmt.Errorf("%w: invalid host %q", ErrInvalidRequest, cfg.Host)
	}

	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidRequest)
	}

	if cfg.TS.IsZero() || cfg.Nonce == "" {
		return nil, fmt.Errorf("%w: request timestamp and nonce", ErrMissingAttributes)
	}

	if strings.ContainsRune(cfg.Ext, '"') {
		return nil, fmt.Errorf("%w: double quote in ext", ErrInvalidRequest)
	}

	if cfg.Hash != nil {
		cfg.Hash = append([]byte(nil), cfg.Hash...)
	}

	cfg.TS = cfg.TS.Truncate(time.Second)

	return &Response{cfg: cfg}, nil
}

// MakeHeader signs the response and returns the Server-Authorization header
// value. Only the mac, hash and ext attributes are emitted; the id,
// timestamp and nonce are already known to the client from its own request.
func (r *Response) MakeHeader(key *Key) (Header, error) {
	mac, err := ComputeMAC(MacTypeResponse, key, r.cfg.TS, r.cfg.Nonce,
		r.cfg.Method, r.cfg.Host, r.cfg.Port, r.cfg.Path, r.cfg.Hash, r.cfg.Ext)
	if err != nil {
		return Header{}, err
	}

	return NewHeader(Header{
		Mac:  mac,
		Hash: r.cfg.Hash,
		Ext:  r.cfg.Ext,
	})
}

// ValidateHeader checks a presented Server-Authorization header. It reports
// true only when the header carries a MAC, that MAC verifies against the
// local request values and the hash and ext the server presented, and any
// locally declared response payload hash matches the header's. There is no
// timestamp freshness check: the timestamp is the client's own.
func (r *Response) ValidateHeader(header Header, key *Key) bool {
	if len(header.Mac) == 0 {
		return false
	}

	mac, err := ComputeMAC(MacTypeResponse, key, r.cfg.TS, r.cfg.Nonce,
		r.cfg.Method, r.cfg.Host, r.cfg.Port, r.cfg.Path, header.Hash, header.Ext)
	if err != nil || !mac.Equal(header.Mac) {
		return false
	}

	if len(r.cfg.Hash) > 0 && !key.crypto.ConstantTimeEqual(r.cfg.Hash, header.Hash) {
		return false
	}

	return true
}
