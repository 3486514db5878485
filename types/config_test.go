package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigurations(t *testing.T) {
	dir := t.TempDir()

	valid := "params:\n  tagset: /data/tagset.txt\n  model: /data/model.txt\n  default_tag: nn\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brown.yaml"), []byte(valid), 0644))

	// missing model path, must be dropped
	invalid := "params:\n  tagset: /data/tagset.txt\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(invalid), 0644))

	// non-yaml files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	cfgs, err := LoadConfigurations(dir)
	require.NoError(t, err)
	require.Len(t, cfgs, 1)
	assert.Equal(t, "brown", cfgs[0].Name)
	assert.Equal(t, "/data/model.txt", cfgs[0].Params.Model)
	assert.Equal(t, "nn", cfgs[0].Params.DefaultTag)
}

func TestLoadConfigurationsMissingDir(t *testing.T) {
	_, err := LoadConfigurations(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
