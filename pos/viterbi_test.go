package pos

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testModelNV loads the two-tag model used across decoder tests:
// "dog" is a noun 90% of the time, "runs" a verb 80% of the time, and the
// dominant transition path is N->V.
func testModelNV(t *testing.T) *Model {
	t.Helper()
	ts := testTagsetNV(t)
	data := fmt.Sprintf(
		"2\n2\ndog 0 %g\nruns 1 %g\nN 0 %g 1 %g\nV 0 %g 1 %g\n",
		math.Log(0.9), math.Log(0.8),
		math.Log(0.3), math.Log(0.7),
		math.Log(0.6), math.Log(0.4),
	)
	m, err := Load(strings.NewReader(data), ts)
	require.NoError(t, err)
	return m
}

func symbols(tagged []TaggedToken) []string {
	out := make([]string, len(tagged))
	for i, tt := range tagged {
		out[i] = tt.Tag.Symbol
	}
	return out
}

func TestDecodeDominantPath(t *testing.T) {
	decoder := NewDecoder(testModelNV(t))

	tagged := decoder.Decode([]string{"dog", "runs"})
	require.Len(t, tagged, 2)
	assert.Equal(t, []string{"N", "V"}, symbols(tagged))
	assert.Equal(t, "dog", tagged[0].Text)
	assert.Equal(t, "runs", tagged[1].Text)
}

func TestDecodeUnknownWordGetsDefaultTag(t *testing.T) {
	decoder := NewDecoder(testModelNV(t))

	cases := []struct {
		name   string
		tokens []string
		pos    int
	}{
		{"leading", []string{"xyzzy", "runs"}, 0},
		{"middle", []string{"dog", "xyzzy", "runs"}, 1},
		{"trailing", []string{"dog", "xyzzy"}, 1},
		{"alone", []string{"xyzzy"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tagged := decoder.Decode(tc.tokens)
			require.Len(t, tagged, len(tc.tokens))
			assert.Equal(t, "N", tagged[tc.pos].Tag.Symbol, "default tag expected for unknown word")
		})
	}
}

func TestDecodeNormalizesLookupOnly(t *testing.T) {
	decoder := NewDecoder(testModelNV(t))

	tagged := decoder.Decode([]string{" Dog ", "RUNS"})
	assert.Equal(t, []string{"N", "V"}, symbols(tagged))
	// Output keeps the raw token text.
	assert.Equal(t, " Dog ", tagged[0].Text)
	assert.Equal(t, "RUNS", tagged[1].Text)
}

func TestDecodeEmptyInput(t *testing.T) {
	decoder := NewDecoder(testModelNV(t))
	assert.Empty(t, decoder.Decode(nil))
	assert.Empty(t, decoder.Decode([]string{}))
}

func TestDecodeLengthPreservation(t *testing.T) {
	decoder := NewDecoder(testModelNV(t))
	for _, tokens := range [][]string{
		{"dog"},
		{"dog", "runs"},
		{"runs", "runs", "dog", "xyzzy", "dog"},
	} {
		assert.Len(t, decoder.Decode(tokens), len(tokens))
	}
}

func TestDecodeIsDeterministic(t *testing.T) {
	decoder := NewDecoder(testModelNV(t))
	tokens := []string{"dog", "runs", "xyzzy", "dog", "runs"}

	first := decoder.Decode(tokens)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, decoder.Decode(tokens))
	}
}

func TestDecodeSingleTagDegenerates(t *testing.T) {
	ts, err := NewTagset([]Tag{{Symbol: "nn", Term: "noun"}})
	require.NoError(t, err)

	counts := NewCounts(1)
	counts.AddObservation("dog", 0)
	counts.AddObservation("runs", 0)
	counts.AddTransition(0, 0)

	m, err := Estimate(ts, counts)
	require.NoError(t, err)

	tagged := NewDecoder(m).Decode([]string{"dog", "runs", "xyzzy"})
	assert.Equal(t, []string{"nn", "nn", "nn"}, symbols(tagged))
}

func TestDecodeAfterRoundTrip(t *testing.T) {
	saved := testModelNV(t)

	var buf strings.Builder
	require.NoError(t, saved.Save(&buf))
	loaded, err := Load(strings.NewReader(buf.String()), saved.Tagset())
	require.NoError(t, err)

	tokens := []string{"dog", "runs", "dog", "xyzzy"}
	assert.Equal(t, NewDecoder(saved).Decode(tokens), NewDecoder(loaded).Decode(tokens))
}
