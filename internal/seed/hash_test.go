package seed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Pinned vectors. These must never change: the token format is a contract
// with every other implementation of the same pipeline.
func TestSum32Vectors(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
	}{
		{"", 0xbb4bfa16},
		{"a", 0x655edc04},
		{"abc", 0xa456eb78},
		{"mode=mystic", 0x05129fa0},
		{"fokus/v1", 0xdf6b4ac2},
		{"The quick brown fox jumps over the lazy dog", 0x96deea79},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Sum32([]byte(tc.in)), "input %q", tc.in)
	}
}

func TestSum32Stability(t *testing.T) {
	data := []byte("profile.sunSign=Zwillinge\ntimeframe=day")
	first := Sum32(data)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, Sum32(data))
	}
}

func TestHexWidth(t *testing.T) {
	require.Equal(t, "00000000", Hex(0))
	require.Equal(t, "deadbeef", Hex(0xdeadbeef))
	require.Equal(t, "0000002a", Hex(42))
	require.Len(t, Hex(Sum32([]byte("x"))), 8)
}
