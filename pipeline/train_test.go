package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"lexeme.io/postag/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainModels(t *testing.T) {
	dir := t.TempDir()

	tagsetPath := filepath.Join(dir, "tagset.txt")
	require.NoError(t, os.WriteFile(tagsetPath, []byte("at\tarticle\nnn\tnoun\nvb\tverb\n"), 0644))

	corpusDir := filepath.Join(dir, "corpus")
	require.NoError(t, os.MkdirAll(corpusDir, 0755))
	corpus := "The/at dog/nn runs/vb the/at cat/nn runs/vb"
	require.NoError(t, os.WriteFile(filepath.Join(corpusDir, "sample.txt"), []byte(corpus), 0644))

	cfg := types.Configuration{
		Name: "trained",
		Params: types.TaggerParams{
			Tagset:     tagsetPath,
			Model:      filepath.Join(dir, "model.txt"),
			DefaultTag: "nn",
		},
	}
	require.NoError(t, TrainModels(corpusDir, []types.Configuration{cfg}))

	ppln, err := NewTagging(cfg)
	require.NoError(t, err)

	response := decodeResponse(t, <-ppln(Request{Tid: "doc-t", Text: "the dog runs"}))
	require.Len(t, response.Sentences, 1)
	assert.Equal(t, []string{"at", "nn", "vb"}, sentenceTags(response.Sentences[0]))
}

func TestTrainModelsMissingCorpus(t *testing.T) {
	dir := t.TempDir()
	tagsetPath := filepath.Join(dir, "tagset.txt")
	require.NoError(t, os.WriteFile(tagsetPath, []byte("nn\tnoun\n"), 0644))

	cfg := types.Configuration{
		Name: "broken",
		Params: types.TaggerParams{
			Tagset: tagsetPath,
			Model:  filepath.Join(dir, "model.txt"),
		},
	}
	err := TrainModels(filepath.Join(dir, "nope"), []types.Configuration{cfg})
	require.Error(t, err)
}
