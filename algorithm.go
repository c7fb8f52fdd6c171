package hawk

// Algorithm identifies the digest algorithm shared by a client and server
// for a set of credentials. The values match the algorithm names used in
// Hawk credential definitions.
type Algorithm string

const (
	// SHA256 selects HMAC/digest computation with SHA-256.
	SHA256 Algorithm = "sha256"

	// SHA384 selects HMAC/digest computation with SHA-384.
	SHA384 Algorithm = "sha384"

	// SHA512 selects HMAC/digest computation with SHA-512.
	SHA512 Algorithm = "sha512"
)

// String returns the algorithm name as used on the wire in credential
// definitions.
func (a Algorithm) String() string {
	return string(a)
}
