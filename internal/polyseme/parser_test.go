package polyseme

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mapFetcher implements RecordFetcher over a plain map, the simplest
// possible stand-in fetcher for these unit tests.
type mapFetcher map[string][]string

func (m mapFetcher) Record(name string) []string {
	return m[name]
}

func setsToFetcher(sets []*ContentSet) mapFetcher {
	f := make(mapFetcher, len(sets))
	for _, s := range sets {
		f[s.Name] = s.SerializedStrings()
	}
	return f
}

func TestParserRoundTripsEmptyInput(t *testing.T) {
	b, err := NewBuilder([]byte("k"))
	require.NoError(t, err)
	sets := b.Finalize()

	p, err := NewParser([]byte("k"), setsToFetcher(sets))
	require.NoError(t, err)

	payload, err := p.ReadToEnd()
	require.NoError(t, err)
	require.Empty(t, payload)
}

func TestParserRoundTripsSmallInput(t *testing.T) {
	b, err := NewBuilder([]byte("this is a key"))
	require.NoError(t, err)
	sets := append(b.Consume([]byte("hello world")), b.Finalize()...)

	p, err := NewParser([]byte("this is a key"), setsToFetcher(sets))
	require.NoError(t, err)

	payload, err := p.ReadToEnd()
	require.NoError(t, err)
	require.Equal(t, "hello world", string(payload))
}

// TestCorruptionFailsHashVerification is spec scenario S5.
func TestCorruptionFailsHashVerification(t *testing.T) {
	data := make([]byte, 10001)
	for i := range data {
		data[i] = 'y'
	}

	b, err := NewBuilder([]byte("this is a key"))
	require.NoError(t, err)
	sets := append(b.Consume(data), b.Finalize()...)
	require.NotEmpty(t, sets)

	fetcher := setsToFetcher(sets)

	var corruptedLabel string
	for label, strs := range fetcher {
		for i, s := range strs {
			if i == 0 || len(s) == 0 {
				continue
			}
			mutated := []byte(s)
			if mutated[0] == 'A' {
				mutated[0] = 'B'
			} else {
				mutated[0] = 'A'
			}
			strs[i] = string(mutated)
			corruptedLabel = label
			break
		}
		if corruptedLabel != "" {
			break
		}
	}
	require.NotEmpty(t, corruptedLabel)

	p, err := NewParser([]byte("this is a key"), fetcher)
	require.NoError(t, err)

	_, err = p.ReadToEnd()
	require.ErrorIs(t, err, ErrHashVerification)
}

// TestMissingRecordFailsEmptyResult is spec scenario S6.
func TestMissingRecordFailsEmptyResult(t *testing.T) {
	data := make([]byte, 10001)
	for i := range data {
		data[i] = 'y'
	}

	b, err := NewBuilder([]byte("this is a key"))
	require.NoError(t, err)
	sets := append(b.Consume(data), b.Finalize()...)
	require.Greater(t, len(sets), 1)

	fetcher := setsToFetcher(sets)
	delete(fetcher, sets[len(sets)-1].Name)

	p, err := NewParser([]byte("this is a key"), fetcher)
	require.NoError(t, err)

	_, err = p.ReadToEnd()
	require.ErrorIs(t, err, ErrEmptyResult)
}

func TestReadReturnsNilAfterEOFIdempotently(t *testing.T) {
	b, err := NewBuilder([]byte("k"))
	require.NoError(t, err)
	sets := b.Finalize()

	p, err := NewParser([]byte("k"), setsToFetcher(sets))
	require.NoError(t, err)

	data, err := p.Read()
	require.NoError(t, err)
	require.Nil(t, data)

	data, err = p.Read()
	require.NoError(t, err)
	require.Nil(t, data)
}
