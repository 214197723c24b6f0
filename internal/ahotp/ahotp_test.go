package ahotp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextIsDeterministicPerCounter(t *testing.T) {
	key, err := DeriveKey([]byte("this is a key"))
	require.NoError(t, err)

	var c1, c2 uint64
	require.Equal(t, Next(&c1, key), Next(&c2, key))
}

func TestNextAdvancesCounterAndVaries(t *testing.T) {
	key, err := DeriveKey([]byte("this is a key"))
	require.NoError(t, err)

	var counter uint64
	first := Next(&counter, key)
	require.Equal(t, uint64(1), counter)
	second := Next(&counter, key)
	require.Equal(t, uint64(2), counter)

	require.NotEqual(t, first, second)
}

func TestNextLabelIsLowercaseCrockford(t *testing.T) {
	key, err := DeriveKey([]byte("secret"))
	require.NoError(t, err)

	var counter uint64
	label := Next(&counter, key)

	for _, r := range label {
		require.False(t, r >= 'A' && r <= 'Z', "label must be lowercase: %q", label)
		require.NotContains(t, "ilou", string(r), "crockford alphabet excludes i, l, o, u")
	}
}

func TestDeriveKeyDiffersBySecret(t *testing.T) {
	k1, err := DeriveKey([]byte("secret-one"))
	require.NoError(t, err)
	k2, err := DeriveKey([]byte("secret-two"))
	require.NoError(t, err)

	var c1, c2 uint64
	require.NotEqual(t, Next(&c1, k1), Next(&c2, k2))
}

func TestNextPanicsOnCounterOverflow(t *testing.T) {
	key, err := DeriveKey([]byte("secret"))
	require.NoError(t, err)

	counter := ^uint64(0)
	require.Panics(t, func() {
		Next(&counter, key)
	})
}
