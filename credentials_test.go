package hawk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	t.Run("nil cryptographer selects the default", func(t *testing.T) {
		key, err := NewKey([]byte("secret"), SHA256, nil)
		require.NoError(t, err)

		assert.Equal(t, SHA256, key.Algorithm())
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := NewKey([]byte("secret"), Algorithm("md5"), nil)
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})

	t.Run("secret is copied", func(t *testing.T) {
		secret := []byte("secret")
		key, err := NewKey(secret, SHA256, nil)
		require.NoError(t, err)

		before, err := key.Sign([]byte("message"))
		require.NoError(t, err)

		secret[0] = 'X'

		after, err := key.Sign([]byte("message"))
		require.NoError(t, err)

		assert.Equal(t, before, after)
	})
}

func TestKeySign(t *testing.T) {
	tests := []struct {
		alg  Algorithm
		size int
	}{
		{SHA256, 32},
		{SHA384, 48},
		{SHA512, 64},
	}

	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			key, err := NewKey([]byte("secret"), tt.alg, nil)
			require.NoError(t, err)

			mac, err := key.Sign([]byte("message"))
			require.NoError(t, err)

			assert.Len(t, []byte(mac), tt.size)
		})
	}
}
