package hawk

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Header is the parsed form of a Hawk Authorization or Server-Authorization
// header value (the attribute list after the scheme name). All fields are
// optional at this level; which fields must be present depends on how the
// header is used. The zero value of each field means "absent": absent
// fields are never serialized.
//
// ts is carried at one-second resolution; sub-second components are
// truncated.
type Header struct {
	ID    string
	TS    time.Time
	Nonce string
	Mac   Mac
	Ext   string
	Hash  []byte
	App   string
	Dlg   string
}

// NewHeader validates the field values of h and returns it with the
// timestamp truncated to whole seconds. String fields must not contain a
// double quote: the grammar has no escape mechanism, so such a value could
// never round-trip.
func NewHeader(h Header) (Header, error) {
	for _, v := range []string{h.ID, h.Nonce, h.Ext, h.App, h.Dlg} {
		if strings.Contains(v, `"`) {
			return Header{}, ErrInvalidHeaderValue
		}
	}

	if !h.TS.IsZero() {
		h.TS = h.TS.Truncate(time.Second)
	}

	return h, nil
}

// ParseHeader parses the attribute list of a Hawk header: comma or
// whitespace separated name="value" pairs. Values are double-quoted with no
// escape support. Leading and trailing separators and whitespace around '='
// are tolerated. Empty input yields a Header with every field absent.
//
// An attribute name outside the Hawk set is a hard error, a ts that does
// not parse as a base-10 integer is ErrInvalidTimestamp, and a mac or hash
// that is not standard base64 is ErrBase64Decode.
func ParseHeader(s string) (Header, error) {
	var h Header

	rest := s
	for {
		rest = strings.TrimLeftFunc(rest, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		if rest == "" {
			break
		}

		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			return Header{}, fmt.Errorf("%w: attribute without '='", ErrHeaderParse)
		}

		name := strings.TrimSpace(rest[:eq])
		rest = strings.TrimLeft(rest[eq+1:], " \t")

		if !strings.HasPrefix(rest, `"`) {
			return Header{}, fmt.Errorf("%w: value of %q is not quoted", ErrHeaderParse, name)
		}
		rest = rest[1:]

		end := strings.IndexByte(rest, '"')
		if end < 0 {
			return Header{}, fmt.Errorf("%w: unterminated value of %q", ErrHeaderParse, name)
		}

		value := rest[:end]
		rest = rest[end+1:]

		switch name {
		case "id":
			h.ID = value

		case "ts":
			sec, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return Header{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
			}
			h.TS = time.Unix(sec, 0)

		case "nonce":
			h.Nonce = value

		case "mac":
			raw, err := base64.StdEncoding.DecodeString(value)
			if err != nil {
				return Header{}, fmt.Errorf("%w: mac", ErrBase64Decode)
			}
			h.Mac = Mac(raw)

		case "ext":
			h.Ext = value

		case "hash":
			raw, err := base64.StdEncoding.DecodeString(value)
			if err != nil {
				return Header{}, fmt.Errorf("%w: hash", ErrBase64Decode)
			}
			h.Hash = raw

		case "app":
			h.App = value

		case "dlg":
			h.Dlg = value

		default:
			return Header{}, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
		}
	}

	return h, nil
}

// String serializes the present attributes in the fixed order id, ts,
// nonce, mac, ext, hash, app, dlg, comma-space separated, with mac and hash
// in padded standard base64. The scheme name is not included. Headers
// produced through NewHeader round-trip: ParseHeader(h.String()) == h.
func (h Header) String() string {
	var b strings.Builder

	sep := ""
	write := func(name, value string) {
		b.WriteString(sep)
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(value)
		b.WriteString(`"`)
		sep = ", "
	}

	if h.ID != "" {
		write("id", h.ID)
	}

	if !h.TS.IsZero() {
		write("ts", strconv.FormatInt(h.TS.Unix(), 10))
	}

	if h.Nonce != "" {
		write("nonce", h.Nonce)
	}

	if len(h.Mac) > 0 {
		write("mac", base64.StdEncoding.EncodeToString(h.Mac))
	}

	if h.Ext != "" {
		write("ext", h.Ext)
	}

	if len(h.Hash) > 0 {
		write("hash", base64.StdEncoding.EncodeToString(h.Hash))
	}

	if h.App != "" {
		write("app", h.App)
	}

	if h.Dlg != "" {
		write("dlg", h.Dlg)
	}

	return b.String()
}
