package hawkhttp

import "errors"

// Client errors.
var (
	// ErrNoCredentials is returned when TransportConfig has no Credentials
	// configured.
	ErrNoCredentials = errors.New("hawkhttp: credentials must not be nil")

	// ErrResponseUnauthorized is returned when the Server-Authorization
	// header is missing or fails validation.
	ErrResponseUnauthorized = errors.New("hawkhttp: server authorization invalid")
)

// Server errors.
var (
	// ErrNoLookup is returned when MiddlewareConfig has no Lookup
	// configured.
	ErrNoLookup = errors.New("hawkhttp: credentials lookup must not be nil")

	// ErrNoAuthorization is returned when a request carries neither a Hawk
	// Authorization header nor a bewit parameter.
	ErrNoAuthorization = errors.New("hawkhttp: no authorization presented")

	// ErrUnsupportedScheme is returned when the Authorization header uses
	// a scheme other than Hawk.
	ErrUnsupportedScheme = errors.New("hawkhttp: unsupported authorization scheme")

	// ErrUnknownCredentials is returned when the lookup yields no
	// credentials for the presented id.
	ErrUnknownCredentials = errors.New("hawkhttp: unknown credentials")

	// ErrUnauthorized is returned when the presented MAC, payload hash, or
	// timestamp fails validation.
	ErrUnauthorized = errors.New("hawkhttp: request validation failed")

	// ErrBewitMethod is returned when a bewit is presented on a method
	// other than GET or HEAD.
	ErrBewitMethod = errors.New("hawkhttp: bewit only valid for GET and HEAD")

	// ErrNoResponseState is returned when signing a response to a request
	// that was authorized by bewit, which carries no nonce to bind to.
	ErrNoResponseState = errors.New("hawkhttp: bewit requests cannot be answered with a signed response")
)
