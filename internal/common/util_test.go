package common

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	require.NoError(t, err)
	require.Len(t, s, n*2)

	_, err = hex.DecodeString(s)
	require.NoError(t, err, "string is not valid hex")
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	require.NoError(t, err)
	require.Empty(t, s)
}

func TestGenerateRandByteArray_Basic(t *testing.T) {
	const n = 32
	a, err := GenerateRandByteArray(n)
	require.NoError(t, err)
	b, err := GenerateRandByteArray(n)
	require.NoError(t, err)

	require.Len(t, a, n)
	require.Len(t, b, n)
	if bytes.Equal(a, b) {
		t.Logf("warning: two GenerateRandByteArray(%d) results are identical; extremely unlikely", n)
	}
}

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	require.Equal(t, make([]byte, 5), buf)
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}
