package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytesEqual(t *testing.T) {
	require.True(t, BytesEqual(nil, nil))
	require.False(t, BytesEqual(nil, []byte{}))
	require.True(t, BytesEqual([]byte("ab"), []byte("ab")))
	require.False(t, BytesEqual([]byte("ab"), []byte("abc")))
}

func TestAlnumString(t *testing.T) {
	s := AlnumString(32)
	require.Len(t, s, 32)
	for i := 0; i < len(s); i++ {
		require.Contains(t, alnum, string(s[i]))
	}
}

func TestStringsRoundTrip(t *testing.T) {
	line := StringsToLine("SET", "k", "v")
	require.Equal(t, []byte("SET"), line[0])
	require.Equal(t, []string{"SET", "k", "v"}, BytesToStrings(line))
}
