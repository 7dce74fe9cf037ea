package hash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSha256KnownValue(t *testing.T) {
	h := Sha256([]byte("abc"))
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(h[:]))
}

func TestDoubleSha256(t *testing.T) {
	single := Sha256([]byte("hello"))
	double := Sha256(single[:])
	require.Equal(t, double, DoubleSha256([]byte("hello")))
}

func TestHash160Length(t *testing.T) {
	h := Hash160([]byte("some pubkey bytes"))
	require.Len(t, h, Hash160Size)
}
