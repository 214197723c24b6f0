package polyseme

import (
	"strings"
	"testing"

	"github.com/faanross/polyseme/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestNewContentSetStartsWithHashPlaceholder(t *testing.T) {
	cs := NewContentSet("abc123")
	require.Len(t, cs.Entries, 1)
	require.Equal(t, EntryHash, cs.Entries[0].Kind)
	require.Equal(t, wire.InitialSetSize, cs.Size())
	require.False(t, cs.Finalized())
}

func TestAddEntryAccumulatesSize(t *testing.T) {
	cs := NewContentSet("abc123")
	entry := NewContentEntry(strings.Repeat("A", 100))

	ok, rejected := cs.AddEntry(entry)
	require.True(t, ok)
	require.Equal(t, Entry{}, rejected)
	require.Equal(t, wire.InitialSetSize+entry.WireSize(), cs.Size())
	require.Len(t, cs.Entries, 2)
}

func TestAddEntryRejectsWhenOverCap(t *testing.T) {
	cs := NewContentSet("abc123")
	huge := NewContentEntry(strings.Repeat("A", 255))

	for i := 0; i < 260; i++ {
		cs.AddEntry(huge)
	}

	ok, rejected := cs.AddEntry(huge)
	require.False(t, ok)
	require.Equal(t, huge, rejected)
	require.LessOrEqual(t, cs.Size(), wire.MaxSetSize)
}

func TestFinalizeSnapshotsHashAndFreezes(t *testing.T) {
	cs := NewContentSet("abc123")
	cs.AddEntry(NewContentEntry("aGVsbG8="))
	cs.Finalize()

	require.True(t, cs.Finalized())
	require.Equal(t, EntryHash, cs.Entries[0].Kind)
	require.NotEqual(t, [32]byte{}, cs.Entries[0].Digest)
}

func TestFinalizeTwicePanics(t *testing.T) {
	cs := NewContentSet("abc123")
	cs.Finalize()
	require.Panics(t, func() {
		cs.Finalize()
	})
}

func TestSerializedStringsPreservesOrder(t *testing.T) {
	cs := NewContentSet("abc123")
	cs.AddEntry(NewContentEntry("AAAA"))
	cs.AddEntry(NewContentEntry("BBBB"))
	cs.Finalize()

	strs := cs.SerializedStrings()
	require.Len(t, strs, 3)
	require.Equal(t, "AAAA", strs[1])
	require.Equal(t, "BBBB", strs[2])
}
