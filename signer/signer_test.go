package signer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecretKeyFromSliceInvalidLength(t *testing.T) {
	_, err := SecretKeyFromSlice(make([]byte, 10))
	require.NotNil(t, err)
	require.True(t, ErrInvalidSecretKey.Is(err))
}

func TestSignAndSerialize(t *testing.T) {
	raw := make([]byte, 32)
	raw[31] = 1
	key, err := SecretKeyFromSlice(raw)
	require.Nil(t, err)

	pub := key.PubKey().Serialize()
	require.Equal(t, 33, len(pub))
	require.True(t, pub[0] == 0x02 || pub[0] == 0x03)

	msg := DoubleSha256([]byte("hello covenant"))
	sig := Sign(msg, key)
	der := sig.SerializeDER()
	require.NotEmpty(t, der)
	// DER signatures begin with the SEQUENCE tag.
	require.Equal(t, byte(0x30), der[0])
}
