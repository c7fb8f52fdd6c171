package hawk

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// nonceSize is the number of random bytes drawn for a generated nonce
// before base64 encoding.
const nonceSize = 16

// RequestConfig describes one HTTP request as seen by the signing scheme.
// Both peers must derive the same values for a MAC to verify: the server
// uses the host and port the client addressed, not its bind address.
//
// Path carries the request path including the query string, if any. Hash is
// the raw payload hash bytes (see PayloadHasher), or nil when the payload
// is not covered. Ext, App and Dlg are optional application data; empty
// means absent.
type RequestConfig struct {
	Method string
	Host   string
	Port   uint16
	Path   string
	Hash   []byte
	Ext    string
	App    string
	Dlg    string
}

// Request is a validated, immutable request description. All signing and
// validation operations for a single HTTP exchange hang off one Request.
type Request struct {
	cfg RequestConfig
}

// NewRequest validates cfg and returns the Request for it. Method, Host and
// Path must be non-empty, Host must be a bare name or address without a
// port, and the optional string fields must not contain a double quote
// since they are emitted inside quoted header values.
func NewRequest(cfg RequestConfig) (*Request, error) {
	if cfg.Method == "" {
		return nil, fmt.Errorf("%w: empty method", ErrInvalidRequest)
	}

	if cfg.Host == "" || strings.ContainsAny(cfg.Host, " \t\r\n") {
		return nil, fmt.Errorf("%w: invalid host %q", ErrInvalidRequest, cfg.Host)
	}

	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidRequest)
	}

	for _, field := range []struct{ name, value string }{
		{"ext", cfg.Ext},
		{"app", cfg.App},
		{"dlg", cfg.Dlg},
	} {
		if strings.ContainsRune(field.value, '"') {
			return nil, fmt.Errorf("%w: double quote in %s", ErrInvalidRequest, field.name)
		}
	}

	// Hash is caller-supplied; copy so later mutation cannot skew the MAC.
	if cfg.Hash != nil {
		cfg.Hash = append([]byte(nil), cfg.Hash...)
	}

	return &Request{cfg: cfg}, nil
}

// RequestConfigFromURL derives a RequestConfig from a parsed URL. The port
// comes from the URL when explicit, otherwise from the scheme (80 for http,
// 443 for https). The path keeps the query string, as the MAC covers it.
//
// The returned config has no hash and no optional fields; set those before
// calling NewRequest if needed.
func RequestConfigFromURL(method string, u *url.URL) (RequestConfig, error) {
	host := u.Hostname()
	if host == "" {
		return RequestConfig{}, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	var port uint16
	if p := u.Port(); p != "" {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return RequestConfig{}, fmt.Errorf("%w: invalid port %q", ErrInvalidURL, p)
		}
		port = uint16(n)
	} else {
		switch u.Scheme {
		case "http":
			port = 80
		case "https":
			port = 443
		default:
			return RequestConfig{}, fmt.Errorf("%w: cannot derive port for scheme %q", ErrInvalidURL, u.Scheme)
		}
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	return RequestConfig{
		Method: method,
		Host:   host,
		Port:   port,
		Path:   path,
	}, nil
}

// RequestState holds the per-request values generated by the sender: the
// timestamp and the nonce. The client keeps it around after sending because
// validating the Server-Authorization response header reuses both values.
type RequestState struct {
	TS    time.Time
	Nonce string
}

// NewRequestState generates a fresh state from the current clock and c's
// random source. A nil c selects DefaultCryptographer.
func NewRequestState(c Cryptographer) (RequestState, error) {
	if c == nil {
		c = DefaultCryptographer
	}

	buf := make([]byte, nonceSize)
	if err := c.RandBytes(buf); err != nil {
		return RequestState{}, err
	}

	return RequestState{
		TS:    time.Now(),
		Nonce: base64.RawURLEncoding.EncodeToString(buf),
	}, nil
}

// MakeHeader signs the request with creds and returns the Authorization
// header value for it, using the timestamp and nonce from state.
func (r *Request) MakeHeader(creds *Credentials, state RequestState) (Header, error) {
	mac, err := ComputeMAC(MacTypeHeader, creds.Key, state.TS, state.Nonce,
		r.cfg.Method, r.cfg.Host, r.cfg.Port, r.cfg.Path, r.cfg.Hash, r.cfg.Ext)
	if err != nil {
		return Header{}, err
	}

	return NewHeader(Header{
		ID:    creds.ID,
		TS:    state.TS,
		Nonce: state.Nonce,
		Mac:   mac,
		Ext:   r.cfg.Ext,
		Hash:  r.cfg.Hash,
		App:   r.cfg.App,
		Dlg:   r.cfg.Dlg,
	})
}

// ValidateHeader checks a presented Authorization header against this
// request and key. It reports true only when the header carries a
// timestamp, nonce and MAC, the MAC verifies for the local request values,
// any locally declared payload hash matches the header's, and the
// timestamp is within skew of the current clock.
//
// Nonce replay detection is out of scope; callers needing it track nonces
// themselves after a successful validation.
func (r *Request) ValidateHeader(header Header, key *Key, skew time.Duration) bool {
	return r.validateHeaderAt(time.Now(), header, key, skew)
}

func (r *Request) validateHeaderAt(now time.Time, header Header, key *Key, skew time.Duration) bool {
	if len(header.Mac) == 0 || header.TS.IsZero() || header.Nonce == "" {
		return false
	}

	// The MAC is recomputed from the local method, host, port and path,
	// but with the hash and ext the sender presented. A forged hash or
	// ext fails here; a truthful one is cross-checked below.
	mac, err := ComputeMAC(MacTypeHeader, key, header.TS, header.Nonce,
		r.cfg.Method, r.cfg.Host, r.cfg.Port, r.cfg.Path, header.Hash, header.Ext)
	if err != nil || !mac.Equal(header.Mac) {
		return false
	}

	if len(r.cfg.Hash) > 0 && !key.crypto.ConstantTimeEqual(r.cfg.Hash, header.Hash) {
		return false
	}

	offset := now.Sub(header.TS)
	if offset < 0 {
		offset = -offset
	}

	return offset <= skew
}

// MakeBewit signs the request as a bewit token expiring at exp. The token
// authorizes this exact method, host, port and path; the request's hash and
// ext, if set, are covered as well and the ext travels inside the token.
func (r *Request) MakeBewit(creds *Credentials, exp time.Time) (*Bewit, error) {
	// A backslash would split the encoded token into extra fields.
	if strings.ContainsRune(r.cfg.Ext, '\\') {
		return nil, ErrInvalidBewitExt
	}

	exp = exp.Truncate(time.Second)

	mac, err := ComputeMAC(MacTypeHeader, creds.Key, exp, "",
		r.cfg.Method, r.cfg.Host, r.cfg.Port, r.cfg.Path, r.cfg.Hash, r.cfg.Ext)
	if err != nil {
		return nil, err
	}

	return &Bewit{
		ID:  creds.ID,
		Exp: exp,
		Mac: mac,
		Ext: r.cfg.Ext,
	}, nil
}

// MakeBewitWithTTL is MakeBewit with the expiration given as a duration
// from the current clock.
func (r *Request) MakeBewitWithTTL(creds *Credentials, ttl time.Duration) (*Bewit, error) {
	return r.MakeBewit(creds, time.Now().Add(ttl))
}

// ValidateBewit checks a bewit extracted from this request's URL. The
// request must have been built from the stripped path returned by
// ExtractBewit. It reports true when the token's MAC verifies for the local
// request values and the token's ext, and the token has not expired.
func (r *Request) ValidateBewit(bewit *Bewit, key *Key) bool {
	return r.validateBewitAt(time.Now(), bewit, key)
}

func (r *Request) validateBewitAt(now time.Time, bewit *Bewit, key *Key) bool {
	mac, err := ComputeMAC(MacTypeHeader, key, bewit.Exp, "",
		r.cfg.Method, r.cfg.Host, r.cfg.Port, r.cfg.Path, r.cfg.Hash, bewit.Ext)
	if err != nil || !mac.Equal(bewit.Mac) {
		return false
	}

	return !now.After(bewit.Exp)
}

// ResponseConfig derives the configuration for the response to this
// request. The timestamp and nonce from state are carried over, as the
// response MAC reuses them. The response payload hash and ext start empty;
// set them on the returned config before calling NewResponse when the
// response covers a payload or carries its own ext.
func (r *Request) ResponseConfig(state RequestState) ResponseConfig {
	return ResponseConfig{
		Method: r.cfg.Method,
		Host:   r.cfg.Host,
		Port:   r.cfg.Port,
		Path:   r.cfg.Path,
		TS:     state.TS,
		Nonce:  state.Nonce,
	}
}
