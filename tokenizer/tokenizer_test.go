package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	sentences := Scan("The dog runs\n\nAnd barks")
	require.Len(t, sentences, 2)

	first := sentences[0]
	require.Len(t, first.Tokens, 3)
	assert.Equal(t, "The", *first.Tokens[0].Text)
	assert.Equal(t, int32(0), first.Tokens[0].Begin)
	assert.Equal(t, int32(3), first.Tokens[0].End)
	assert.Equal(t, "runs", *first.Tokens[2].Text)
	assert.Equal(t, int32(8), first.Tokens[2].Begin)

	second := sentences[1]
	require.Len(t, second.Tokens, 2)
	assert.Equal(t, "And", *second.Tokens[0].Text)
	assert.Equal(t, int32(14), second.Begin)
	assert.Equal(t, int32(14), second.Tokens[0].Begin)
}

func TestScanEmptyText(t *testing.T) {
	assert.Empty(t, Scan(""))
	assert.Empty(t, Scan("   \n \t \n"))
}

func TestScanCollapsesRepeatedWhitespace(t *testing.T) {
	sentences := Scan("a\t\t b")
	require.Len(t, sentences, 1)
	require.Len(t, sentences[0].Tokens, 2)
	assert.Equal(t, "a", *sentences[0].Tokens[0].Text)
	assert.Equal(t, "b", *sentences[0].Tokens[1].Text)
}
