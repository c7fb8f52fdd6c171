package hawkhttp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vitalvas/hawk"
)

// TransportConfig configures the client-side signing transport.
type TransportConfig struct {
	// Credentials identify and sign every outgoing request. Required.
	Credentials *hawk.Credentials

	// HashPayload covers the request body with a payload hash. The body
	// is read through GetBody, so it must be replayable; requests built
	// with http.NewRequest from a *bytes.Buffer, *bytes.Reader or
	// *strings.Reader are.
	HashPayload bool

	// ValidateResponse requires a valid Server-Authorization header on
	// every response. Responses without one, or with one that fails
	// validation, are returned as ErrResponseUnauthorized.
	ValidateResponse bool

	// Ext, App and Dlg are optional application data carried in every
	// request header.
	Ext string
	App string
	Dlg string

	// Cryptographer overrides the backend used for payload hashing and
	// nonce generation. Nil selects hawk.DefaultCryptographer.
	Cryptographer hawk.Cryptographer
}

// Transport is an http.RoundTripper that signs outgoing requests with a
// Hawk Authorization header.
//
// Use NewTransport to create a Transport with a configured *http.Transport
// for proxy, TLS, and timeout settings.
type Transport struct {
	base   http.RoundTripper
	config TransportConfig
}

// NewTransport creates a signing Transport that delegates to base after
// signing each request. When base is nil, a clone of http.DefaultTransport
// is used, giving an independent connection pool with default proxy, TLS,
// and timeout settings.
func NewTransport(base *http.Transport, cfg TransportConfig) (*Transport, error) {
	if cfg.Credentials == nil {
		return nil, ErrNoCredentials
	}

	var rt http.RoundTripper
	if base != nil {
		rt = base
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Transport{
		base:   rt,
		config: cfg,
	}, nil
}

// RoundTrip signs the request and then delegates to the base transport.
// The original request is cloned before signing to avoid mutation. When
// GetBody is available, the clone receives its own body copy so hashing
// does not consume the caller's body.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if clone.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		clone.Body = body
	}

	cfg, err := hawk.RequestConfigFromURL(clone.Method, clone.URL)
	if err != nil {
		return nil, err
	}

	cfg.Ext = t.config.Ext
	cfg.App = t.config.App
	cfg.Dlg = t.config.Dlg

	if t.config.HashPayload && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		payload, err := io.ReadAll(body)
		body.Close()
		if err != nil {
			return nil, err
		}

		hash, err := hawk.HashPayload(contentType(clone.Header),
			t.config.Credentials.Key.Algorithm(), payload, t.config.Cryptographer)
		if err != nil {
			return nil, err
		}

		cfg.Hash = hash
	}

	hreq, err := hawk.NewRequest(cfg)
	if err != nil {
		return nil, err
	}

	state, err := hawk.NewRequestState(t.config.Cryptographer)
	if err != nil {
		return nil, err
	}

	header, err := hreq.MakeHeader(t.config.Credentials, state)
	if err != nil {
		return nil, err
	}

	clone.Header.Set("Authorization", "Hawk "+header.String())

	resp, err := t.base.RoundTrip(clone)
	if err != nil {
		return nil, err
	}

	if t.config.ValidateResponse {
		if err := t.validateResponse(hreq, state, resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}

	return resp, nil
}

// validateResponse checks the Server-Authorization header against the
// request that was sent. When the server covered the response payload, the
// body is read and restored so the hash can be recomputed locally.
func (t *Transport) validateResponse(hreq *hawk.Request, state hawk.RequestState, resp *http.Response) error {
	value := resp.Header.Get("Server-Authorization")
	rest, ok := cutScheme(value)
	if !ok {
		return fmt.Errorf("%w: missing header", ErrResponseUnauthorized)
	}

	header, err := hawk.ParseHeader(rest)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResponseUnauthorized, err)
	}

	cfg := hreq.ResponseConfig(state)

	if len(header.Hash) > 0 {
		body, err := readAndRestoreBody(resp)
		if err != nil {
			return err
		}

		hash, err := hawk.HashPayload(contentType(resp.Header),
			t.config.Credentials.Key.Algorithm(), body, t.config.Cryptographer)
		if err != nil {
			return err
		}

		cfg.Hash = hash
	}

	hresp, err := hawk.NewResponse(cfg)
	if err != nil {
		return err
	}

	if !hresp.ValidateHeader(header, t.config.Credentials.Key) {
		return fmt.Errorf("%w: bad mac", ErrResponseUnauthorized)
	}

	return nil
}

// cutScheme strips the "Hawk" scheme prefix from an authorization header
// value. The scheme name is case-insensitive per RFC 9110.
func cutScheme(value string) (string, bool) {
	const scheme = "hawk"

	if len(value) <= len(scheme) || !strings.EqualFold(value[:len(scheme)], scheme) {
		return "", false
	}

	rest := value[len(scheme):]
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}

	return strings.TrimLeft(rest, " \t"), true
}

// contentType returns the media type of a message, stripped of parameters
// such as charset, lowercased. Payload hashes cover the bare media type.
func contentType(h http.Header) string {
	ct := h.Get("Content-Type")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}

	return strings.ToLower(strings.TrimSpace(ct))
}

// readAndRestoreBody drains a response body and replaces it with an
// in-memory copy so the caller can still read it.
func readAndRestoreBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
