package hawkhttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vitalvas/hawk"
)

// MiddlewareFunc wraps an http.Handler with additional behaviour.
type MiddlewareFunc func(next http.Handler) http.Handler

// CredentialsLookup resolves the credentials for the id a request
// presented. Returning nil credentials or an error rejects the request.
type CredentialsLookup func(r *http.Request, id string) (*hawk.Credentials, error)

// MiddlewareConfig configures the server-side authentication middleware.
type MiddlewareConfig struct {
	// Lookup resolves presented ids to credentials. Required.
	Lookup CredentialsLookup

	// Skew is the maximum allowed offset between the request timestamp
	// and the local clock. Defaults to one minute when zero.
	Skew time.Duration

	// AllowBewit also accepts bewit URL tokens on GET and HEAD requests
	// that carry no Authorization header.
	AllowBewit bool

	// ValidatePayload recomputes the payload hash from the request body
	// whenever the header declares one, rejecting requests whose body was
	// altered. The body is read into memory and restored.
	ValidatePayload bool

	// Cryptographer overrides the backend used for payload hashing. Nil
	// selects hawk.DefaultCryptographer.
	Cryptographer hawk.Cryptographer

	// OnError is called when authentication fails. When nil, a plain 401
	// Unauthorized response with a WWW-Authenticate challenge is sent.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

type authInfoKey struct{}

// AuthInfo describes a successfully authenticated request. Exactly one of
// Header and Bewit is set, depending on how the request was authorized.
type AuthInfo struct {
	Credentials *hawk.Credentials
	Request     *hawk.Request
	Header      hawk.Header
	Bewit       *hawk.Bewit
}

// AuthInfoFromContext returns the AuthInfo stored by Middleware, or nil
// when the request did not pass through it.
func AuthInfoFromContext(ctx context.Context) *AuthInfo {
	if info, ok := ctx.Value(authInfoKey{}).(*AuthInfo); ok {
		return info
	}

	return nil
}

// SignResponse produces the Server-Authorization header value for the
// response to this request, covering the optional response payload hash
// and ext. Bewit-authorized requests cannot be answered with a signed
// response, as they carry no nonce.
func (a *AuthInfo) SignResponse(hash []byte, ext string) (hawk.Header, error) {
	if a.Bewit != nil {
		return hawk.Header{}, ErrNoResponseState
	}

	cfg := a.Request.ResponseConfig(hawk.RequestState{
		TS:    a.Header.TS,
		Nonce: a.Header.Nonce,
	})
	cfg.Hash = hash
	cfg.Ext = ext

	resp, err := hawk.NewResponse(cfg)
	if err != nil {
		return hawk.Header{}, err
	}

	return resp.MakeHeader(a.Credentials.Key)
}

// Middleware returns a MiddlewareFunc that authenticates incoming requests
// with a Hawk Authorization header or, when enabled, a bewit URL token.
// Authenticated requests carry an AuthInfo in their context; every
// response, including rejections, carries an X-Request-ID header for
// correlation.
//
// It returns ErrNoLookup if MiddlewareConfig.Lookup is nil.
func Middleware(cfg MiddlewareConfig) (MiddlewareFunc, error) {
	if cfg.Lookup == nil {
		return nil, ErrNoLookup
	}

	if cfg.Skew == 0 {
		cfg.Skew = time.Minute
	}

	onError := cfg.OnError
	if onError == nil {
		onError = defaultOnError
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.Must(uuid.NewV7()).String()
				r.Header.Set("X-Request-ID", id)
			}
			w.Header().Set("X-Request-ID", id)

			info, err := authenticate(r, cfg)
			if err != nil {
				onError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), authInfoKey{}, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

func authenticate(r *http.Request, cfg MiddlewareConfig) (*AuthInfo, error) {
	if value := r.Header.Get("Authorization"); value != "" {
		rest, ok := cutScheme(value)
		if !ok {
			return nil, ErrUnsupportedScheme
		}

		return authenticateHeader(r, cfg, rest)
	}

	if cfg.AllowBewit {
		return authenticateBewit(r, cfg)
	}

	return nil, ErrNoAuthorization
}

func authenticateHeader(r *http.Request, cfg MiddlewareConfig, value string) (*AuthInfo, error) {
	header, err := hawk.ParseHeader(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	if header.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrUnauthorized)
	}

	creds, err := cfg.Lookup(r, header.ID)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, ErrUnknownCredentials
	}

	host, port, err := hostPort(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	rcfg := hawk.RequestConfig{
		Method: r.Method,
		Host:   host,
		Port:   port,
		Path:   r.URL.RequestURI(),
	}

	if cfg.ValidatePayload && len(header.Hash) > 0 {
		body, err := readAndRestoreRequestBody(r)
		if err != nil {
			return nil, err
		}

		hash, err := hawk.HashPayload(contentType(r.Header),
			creds.Key.Algorithm(), body, cfg.Cryptographer)
		if err != nil {
			return nil, err
		}

		rcfg.Hash = hash
	}

	// Ext travels in the header and is covered by the MAC there; the
	// local description leaves it empty.
	hreq, err := hawk.NewRequest(rcfg)
	if err != nil {
		return nil, err
	}

	if !hreq.ValidateHeader(header, creds.Key, cfg.Skew) {
		return nil, ErrUnauthorized
	}

	return &AuthInfo{
		Credentials: creds,
		Request:     hreq,
		Header:      header,
	}, nil
}

func authenticateBewit(r *http.Request, cfg MiddlewareConfig) (*AuthInfo, error) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return nil, ErrBewitMethod
	}

	stripped, bewit, err := hawk.ExtractBewit(r.URL.RequestURI())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if bewit == nil {
		return nil, ErrNoAuthorization
	}

	creds, err := cfg.Lookup(r, bewit.ID)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, ErrUnknownCredentials
	}

	host, port, err := hostPort(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	// Bewits are minted for GET; a HEAD request validates against the
	// same token.
	hreq, err := hawk.NewRequest(hawk.RequestConfig{
		Method: http.MethodGet,
		Host:   host,
		Port:   port,
		Path:   stripped,
	})
	if err != nil {
		return nil, err
	}

	if !hreq.ValidateBewit(bewit, creds.Key) {
		return nil, ErrUnauthorized
	}

	return &AuthInfo{
		Credentials: creds,
		Request:     hreq,
		Bewit:       bewit,
	}, nil
}

// hostPort derives the host and port the client addressed from the Host
// header, falling back to the default port for the connection's scheme.
func hostPort(r *http.Request) (string, uint16, error) {
	host := r.Host
	if host == "" {
		return "", 0, fmt.Errorf("missing host")
	}

	if h, p, err := net.SplitHostPort(host); err == nil {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return "", 0, fmt.Errorf("invalid port %q", p)
		}

		return h, uint16(n), nil
	}

	// Bracketed IPv6 literal without a port.
	if len(host) >= 2 && host[0] == '[' && host[len(host)-1] == ']' {
		host = host[1 : len(host)-1]
	}

	if r.TLS != nil {
		return host, 443, nil
	}

	return host, 80, nil
}

// readAndRestoreRequestBody drains a request body and replaces it with an
// in-memory copy so downstream handlers can still read it.
func readAndRestoreRequestBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}

// defaultOnError writes a 401 Unauthorized response with a Hawk challenge.
func defaultOnError(w http.ResponseWriter, _ *http.Request, _ error) {
	w.Header().Set("WWW-Authenticate", "Hawk")
	w.WriteHeader(http.StatusUnauthorized)
}
