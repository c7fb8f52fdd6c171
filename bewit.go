package hawk

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Bewit is a self-contained, time-limited authorization token carried in a
// URL query parameter in place of an Authorization header. It authorizes a
// single GET request until the absolute expiration instant Exp.
//
// An empty Ext means "no ext"; the wire format cannot distinguish the two
// and they canonicalize identically.
type Bewit struct {
	ID  string
	Exp time.Time
	Mac Mac
	Ext string
}

const bewitParam = "bewit="

// String returns the encoded bewit: the four fields joined with
// backslashes, then the whole string in unpadded url-safe base64.
func (b *Bewit) String() string {
	raw := fmt.Sprintf("%s\\%d\\%s\\%s",
		b.ID,
		b.Exp.Unix(),
		base64.StdEncoding.EncodeToString(b.Mac),
		b.Ext,
	)

	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// ParseBewit decodes an encoded bewit. The decoded value must contain
// exactly four backslash-separated fields; each field failure reports a
// field-specific error. An empty fourth field decodes to no ext.
func ParseBewit(s string) (*Bewit, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: bewit", ErrBase64Decode)
	}

	parts := bytes.Split(raw, []byte{'\\'})
	if len(parts) != 4 {
		return nil, ErrInvalidBewitFormat
	}

	if !utf8.Valid(parts[0]) {
		return nil, ErrInvalidBewitID
	}
	id := string(parts[0])

	exp, err := strconv.ParseUint(string(parts[1]), 10, 63)
	if err != nil {
		return nil, ErrInvalidBewitExp
	}

	mac, err := base64.StdEncoding.DecodeString(string(parts[2]))
	if err != nil {
		return nil, ErrInvalidBewitMac
	}

	var ext string
	if len(parts[3]) > 0 {
		if !utf8.Valid(parts[3]) {
			return nil, ErrInvalidBewitExt
		}
		ext = string(parts[3])
	}

	return &Bewit{
		ID:  id,
		Exp: time.Unix(int64(exp), 0),
		Mac: Mac(mac),
		Ext: ext,
	}, nil
}

// ExtractBewit scans a path with optional query string for a bewit
// parameter. With no bewit present, the path is returned unmodified and the
// bewit is nil. With exactly one present, the returned path has the
// parameter removed — the form the MAC was computed over — and the decoded
// bewit is returned. Two or more bewit parameters are a hard error.
//
// Only the bewit component is interpreted; other query parameters pass
// through byte-for-byte with no percent-decoding.
func ExtractBewit(path string) (string, *Bewit, error) {
	var bewits, kept []string

	start := 0
	for i := 0; i <= len(path); i++ {
		if i < len(path) && path[i] != '&' && path[i] != '?' {
			continue
		}

		comp := path[start:i]
		if strings.HasPrefix(comp, bewitParam) {
			bewits = append(bewits, comp)
		} else {
			kept = append(kept, comp)
		}
		start = i + 1
	}

	switch len(bewits) {
	case 0:
		return path, nil, nil

	case 1:
		bewit, err := ParseBewit(bewits[0][len(bewitParam):])
		if err != nil {
			return "", nil, err
		}

		stripped := kept[0]
		if len(kept) > 1 {
			stripped += "?" + strings.Join(kept[1:], "&")
		}

		return stripped, bewit, nil

	default:
		return "", nil, ErrMultipleBewits
	}
}
