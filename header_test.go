package hawk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	t.Run("full header", func(t *testing.T) {
		h, err := ParseHeader(`id="dh37fgj492je", ts="1353832234", nonce="j4h3g2", ` +
			`mac="6R4rV5iE+NPoym+WwjeHzjAGXUtLNIxmo1vpMofpLAE=", ` +
			`ext="some-app-ext-data", ` +
			`hash="6R4rV5iE+NPoym+WwjeHzjAGXUtLNIxmo1vpMofpLAE=", ` +
			`app="my-app", dlg="my-authority"`)
		require.NoError(t, err)

		assert.Equal(t, "dh37fgj492je", h.ID)
		assert.Equal(t, time.Unix(1353832234, 0), h.TS)
		assert.Equal(t, "j4h3g2", h.Nonce)
		assert.Len(t, []byte(h.Mac), 32)
		assert.Equal(t, "some-app-ext-data", h.Ext)
		assert.Len(t, h.Hash, 32)
		assert.Equal(t, "my-app", h.App)
		assert.Equal(t, "my-authority", h.Dlg)
	})

	t.Run("empty input", func(t *testing.T) {
		h, err := ParseHeader("")
		require.NoError(t, err)

		assert.Equal(t, Header{}, h)
	})

	t.Run("subset of attributes", func(t *testing.T) {
		h, err := ParseHeader(`id="xyz", ts="1353832234", nonce="abc"`)
		require.NoError(t, err)

		assert.Equal(t, "xyz", h.ID)
		assert.Equal(t, "abc", h.Nonce)
		assert.Nil(t, h.Mac)
		assert.Empty(t, h.Ext)
	})

	t.Run("messy whitespace and separators", func(t *testing.T) {
		h, err := ParseHeader("  ,, id  =  \"xyz\" ,,\t nonce=\"abc\"  , ")
		require.NoError(t, err)

		assert.Equal(t, "xyz", h.ID)
		assert.Equal(t, "abc", h.Nonce)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := ParseHeader(`id="xyz", extra="1"`)
		assert.ErrorIs(t, err, ErrUnknownAttribute)
	})

	t.Run("unquoted value", func(t *testing.T) {
		_, err := ParseHeader(`id=xyz`)
		assert.ErrorIs(t, err, ErrHeaderParse)
	})

	t.Run("unterminated value", func(t *testing.T) {
		_, err := ParseHeader(`id="xyz`)
		assert.ErrorIs(t, err, ErrHeaderParse)
	})

	t.Run("attribute without equals", func(t *testing.T) {
		_, err := ParseHeader(`id`)
		assert.ErrorIs(t, err, ErrHeaderParse)
	})

	t.Run("non-numeric timestamp", func(t *testing.T) {
		_, err := ParseHeader(`ts="now"`)
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})

	t.Run("bad mac base64", func(t *testing.T) {
		_, err := ParseHeader(`mac="not!base64"`)
		assert.ErrorIs(t, err, ErrBase64Decode)
	})

	t.Run("bad hash base64", func(t *testing.T) {
		_, err := ParseHeader(`hash="not!base64"`)
		assert.ErrorIs(t, err, ErrBase64Decode)
	})
}

func TestNewHeader(t *testing.T) {
	t.Run("rejects double quote in string fields", func(t *testing.T) {
		for _, h := range []Header{
			{ID: `a"b`},
			{Nonce: `a"b`},
			{Ext: `a"b`},
			{App: `a"b`},
			{Dlg: `a"b`},
		} {
			_, err := NewHeader(h)
			assert.ErrorIs(t, err, ErrInvalidHeaderValue)
		}
	})

	t.Run("truncates timestamp to seconds", func(t *testing.T) {
		h, err := NewHeader(Header{TS: time.Unix(1000, 999999999)})
		require.NoError(t, err)

		assert.Equal(t, time.Unix(1000, 0), h.TS)
	})
}

func TestHeaderString(t *testing.T) {
	t.Run("fixed attribute order", func(t *testing.T) {
		h, err := NewHeader(Header{
			ID:    "dh37fgj492je",
			TS:    time.Unix(1353832234, 0),
			Nonce: "j4h3g2",
			Mac:   Mac{1, 2, 3},
			Ext:   "ext-data",
			Hash:  []byte{4, 5, 6},
			App:   "my-app",
			Dlg:   "my-authority",
		})
		require.NoError(t, err)

		assert.Equal(t, `id="dh37fgj492je", ts="1353832234", nonce="j4h3g2", `+
			`mac="AQID", ext="ext-data", hash="BAUG", app="my-app", dlg="my-authority"`,
			h.String())
	})

	t.Run("absent fields are omitted", func(t *testing.T) {
		h := Header{Mac: Mac{1, 2, 3}}

		assert.Equal(t, `mac="AQID"`, h.String())
	})

	t.Run("zero value serializes empty", func(t *testing.T) {
		assert.Equal(t, "", Header{}.String())
	})

	t.Run("round trip", func(t *testing.T) {
		original, err := NewHeader(Header{
			ID:    "me",
			TS:    time.Unix(1000, 0),
			Nonce: "nonny",
			Mac:   Mac{192, 227, 235},
			Ext:   "ext-data",
		})
		require.NoError(t, err)

		parsed, err := ParseHeader(original.String())
		require.NoError(t, err)

		assert.Equal(t, original, parsed)
	})
}
