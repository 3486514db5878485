package pos

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTagsetBrown(t *testing.T) *Tagset {
	t.Helper()
	ts, err := NewTagset([]Tag{
		{Symbol: "at", Term: "article"},
		{Symbol: "nn", Term: "noun, singular"},
		{Symbol: "vb", Term: "verb, base form"},
		{Symbol: "cd", Term: "cardinal numeral"},
	}, WithDefaultTag("nn"))
	require.NoError(t, err)
	return ts
}

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestCollect(t *testing.T) {
	ts := testTagsetBrown(t)
	counts := NewCounts(ts.Len())

	err := NewCollector(ts).Collect(strings.NewReader("The/at dog/nn runs/vb"), counts)
	require.NoError(t, err)

	assert.Equal(t, 3, counts.NumWords())
	assert.Equal(t, []int{1, 0, 0, 0}, counts.WordTag["the"], "word is lowercased")
	assert.Equal(t, []int{0, 1, 0, 0}, counts.WordTag["dog"])
	assert.Equal(t, []int{1, 1, 1, 0}, counts.Marginals)
	assert.Equal(t, 1, counts.Transitions[0][1])
	assert.Equal(t, 1, counts.Transitions[1][2])
	assert.Equal(t, 0, counts.Transitions[2][0])
}

func TestCollectSplitsAtLastSlash(t *testing.T) {
	ts := testTagsetBrown(t)
	counts := NewCounts(ts.Len())

	err := NewCollector(ts).Collect(strings.NewReader("1/2/cd"), counts)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 1}, counts.WordTag["1/2"])
}

func TestCollectStripsTagDecoration(t *testing.T) {
	ts := testTagsetBrown(t)
	counts := NewCounts(ts.Len())

	err := NewCollector(ts).Collect(strings.NewReader("Bank/nn-tl"), counts)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0, 0}, counts.WordTag["bank"])
}

func TestCollectUnknownTagIsFatal(t *testing.T) {
	ts := testTagsetBrown(t)
	counts := NewCounts(ts.Len())

	err := NewCollector(ts).Collect(strings.NewReader("dog/nn weird/zz"), counts)
	var notFound *TagNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "zz", notFound.Symbol)
}

func TestCollectTokenWithoutSlashIsFatal(t *testing.T) {
	ts := testTagsetBrown(t)
	counts := NewCounts(ts.Len())

	err := NewCollector(ts).Collect(strings.NewReader("untagged"), counts)
	var notFound *TagNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestCollectDirWalksNestedDirectories(t *testing.T) {
	ts := testTagsetBrown(t)
	root := writeCorpus(t, map[string]string{
		"a.txt":             "The/at dog/nn",
		"nested/deep/b.txt": "runs/vb",
	})

	counts, err := NewCollector(ts).CollectDir(root)
	require.NoError(t, err)
	assert.Equal(t, 3, counts.NumWords())
	assert.Equal(t, []int{1, 1, 1, 0}, counts.Marginals)
}

func TestCollectDirFileBoundarySkipsTransition(t *testing.T) {
	ts := testTagsetBrown(t)
	root := writeCorpus(t, map[string]string{
		"a.txt": "a/nn",
		"b.txt": "b/vb",
	})

	counts, err := NewCollector(ts).CollectDir(root)
	require.NoError(t, err)

	// Each file's sole token is a boundary token with no intra-file
	// predecessor, so no transition is counted in either direction.
	for i := 0; i < ts.Len(); i++ {
		for j := 0; j < ts.Len(); j++ {
			assert.Zero(t, counts.Transitions[i][j])
		}
	}
	assert.Equal(t, 1, counts.Marginals[1])
	assert.Equal(t, 1, counts.Marginals[2])
}

func TestCollectDirErrors(t *testing.T) {
	ts := testTagsetBrown(t)
	collector := NewCollector(ts)

	t.Run("missing path", func(t *testing.T) {
		_, err := collector.CollectDir(filepath.Join(t.TempDir(), "nope"))
		var dirErr *CorpusDirectoryError
		require.True(t, errors.As(err, &dirErr))
	})

	t.Run("not a directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("dog/nn"), 0644))
		_, err := collector.CollectDir(path)
		var dirErr *CorpusDirectoryError
		require.True(t, errors.As(err, &dirErr))
	})
}
