package hawk

import "errors"

// Header codec errors.
var (
	// ErrHeaderParse is returned when the header attribute grammar is
	// malformed (missing '=', unquoted or unterminated value).
	ErrHeaderParse = errors.New("hawk: malformed header attribute list")

	// ErrUnknownAttribute is returned when the header contains an
	// attribute name outside the fixed Hawk set. Unknown attributes are
	// never ignored silently.
	ErrUnknownAttribute = errors.New("hawk: unknown header attribute")

	// ErrMissingAttributes is returned when an operation requires header
	// or request-state fields that are absent.
	ErrMissingAttributes = errors.New("hawk: required attributes missing")

	// ErrInvalidTimestamp is returned when a ts attribute is present but
	// does not parse as a base-10 integer.
	ErrInvalidTimestamp = errors.New("hawk: invalid timestamp")

	// ErrBase64Decode is returned when a base64-encoded value (mac, hash,
	// or the bewit envelope) does not decode.
	ErrBase64Decode = errors.New("hawk: invalid base64 value")

	// ErrInvalidHeaderValue is returned when a header field value contains
	// a double quote, which the grammar cannot represent.
	ErrInvalidHeaderValue = errors.New(`hawk: header value must not contain '"'`)
)

// Bewit codec errors.
var (
	// ErrInvalidBewitFormat is returned when a decoded bewit does not
	// contain exactly four backslash-separated fields.
	ErrInvalidBewitFormat = errors.New("hawk: bewit must contain exactly four fields")

	// ErrInvalidBewitID is returned when the bewit id field is not valid UTF-8.
	ErrInvalidBewitID = errors.New("hawk: invalid bewit id")

	// ErrInvalidBewitExp is returned when the bewit expiration field is not
	// an unsigned base-10 integer.
	ErrInvalidBewitExp = errors.New("hawk: invalid bewit expiration")

	// ErrInvalidBewitMac is returned when the bewit mac field is not valid
	// standard base64.
	ErrInvalidBewitMac = errors.New("hawk: invalid bewit mac")

	// ErrInvalidBewitExt is returned when the bewit ext field is not valid UTF-8.
	ErrInvalidBewitExt = errors.New("hawk: invalid bewit ext")

	// ErrMultipleBewits is returned when a path carries more than one
	// bewit query parameter.
	ErrMultipleBewits = errors.New("hawk: more than one bewit parameter present")
)

// Request construction errors.
var (
	// ErrInvalidRequest is returned when a RequestConfig is missing the
	// method, host, or path.
	ErrInvalidRequest = errors.New("hawk: request config incomplete")

	// ErrInvalidURL is returned when host, port, or path cannot be derived
	// from a supplied URL.
	ErrInvalidURL = errors.New("hawk: host, port and path not derivable from url")
)

// Cryptographic backend errors.
var (
	// ErrCrypto is returned when the cryptographic backend fails
	// (e.g. the random source is exhausted).
	ErrCrypto = errors.New("hawk: cryptographic backend failure")

	// ErrUnsupportedAlgorithm is returned when the backend does not
	// implement the requested digest algorithm.
	ErrUnsupportedAlgorithm = errors.New("hawk: unsupported digest algorithm")

	// ErrHasherFinished is returned when a PayloadHasher is used after
	// Finish has been called.
	ErrHasherFinished = errors.New("hawk: payload hasher already finished")
)
