package hawk

import (
	"bytes"
	"crypto/subtle"
	"encoding/base64"
	"strconv"
	"time"
)

// MacType selects the tag line of the canonical string, separating request
// MACs from response MACs. A MAC computed under one type never validates
// under the other.
type MacType int

const (
	// MacTypeHeader tags a request MAC (Authorization header and bewits).
	MacTypeHeader MacType = iota

	// MacTypeResponse tags a response MAC (Server-Authorization header).
	MacTypeResponse
)

func (t MacType) tag() string {
	if t == MacTypeResponse {
		return "hawk.1.response"
	}

	return "hawk.1.header"
}

// Mac is a message authentication code, the signature in a Hawk exchange.
type Mac []byte

// Equal reports whether two MACs are identical. The comparison is
// constant-time; only the lengths, which are not secret, can influence
// timing.
func (m Mac) Equal(other Mac) bool {
	return subtle.ConstantTimeCompare(m, other) == 1
}

// ComputeMAC builds the canonical string for a request or response and
// signs it with key. ts is truncated to whole seconds. The method is signed
// as supplied; callers are expected to pass it uppercase. The path must
// already include the query string, if any. A nil or empty hash and an
// empty ext produce empty canonical lines.
func ComputeMAC(macType MacType, key *Key, ts time.Time, nonce, method, host string, port uint16, path string, hash []byte, ext string) (Mac, error) {
	return key.Sign(canonicalString(macType, ts, nonce, method, host, port, path, hash, ext))
}

// canonicalString produces the exact byte sequence that is signed: nine
// newline-terminated lines with nothing after the final newline.
func canonicalString(macType MacType, ts time.Time, nonce, method, host string, port uint16, path string, hash []byte, ext string) []byte {
	var buf bytes.Buffer

	buf.WriteString(macType.tag())
	buf.WriteByte('\n')
	buf.WriteString(strconv.FormatInt(ts.Unix(), 10))
	buf.WriteByte('\n')
	buf.WriteString(nonce)
	buf.WriteByte('\n')
	buf.WriteString(method)
	buf.WriteByte('\n')
	buf.WriteString(path)
	buf.WriteByte('\n')
	buf.WriteString(host)
	buf.WriteByte('\n')
	buf.WriteString(strconv.FormatUint(uint64(port), 10))
	buf.WriteByte('\n')

	if len(hash) > 0 {
		buf.WriteString(base64.StdEncoding.EncodeToString(hash))
	}
	buf.WriteByte('\n')

	buf.WriteString(ext)
	buf.WriteByte('\n')

	return buf.Bytes()
}
