package zonefile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/faanross/polyseme/internal/polyseme"
)

func buildSet(t *testing.T, name string, texts ...string) *polyseme.ContentSet {
	t.Helper()
	cs := polyseme.NewContentSet(name)
	for _, text := range texts {
		ok, _ := cs.AddEntry(polyseme.NewContentEntry(text))
		require.True(t, ok)
	}
	cs.Finalize()
	return cs
}

func TestWriteThenParseRoundTrips(t *testing.T) {
	sets := []*polyseme.ContentSet{
		buildSet(t, "aaaa111", "AAAA", "BBBB"),
		buildSet(t, "bbbb222", "CCCC"),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "example.com", sets))

	records, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, "aaaa111", records[0].Label)
	require.Equal(t, "example.com", records[0].Domain)
	require.Equal(t, sets[0].SerializedStrings(), records[0].Strings)

	require.Equal(t, "bbbb222", records[1].Label)
	require.Equal(t, sets[1].SerializedStrings(), records[1].Strings)
}

func TestEscapeRoundTripsSpecialBytes(t *testing.T) {
	set := buildSet(t, "label1", "has\"quote\\slash")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "example.com", []*polyseme.ContentSet{set}))

	records, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, set.SerializedStrings(), records[0].Strings)
}

func TestParseSkipsCommentsAndBlankLines(t *testing.T) {
	input := "; a comment\n\n" + "label1.example.com TXT \"AAAA\"\n"
	records, err := Parse(bytes.NewBufferString(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, []string{"AAAA"}, records[0].Strings)
}

func TestParseRejectsMissingTXTMarker(t *testing.T) {
	_, err := Parse(bytes.NewBufferString("not a valid line\n"))
	require.Error(t, err)
}
