package fetch

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MoveFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "installer-fetch-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "geode-artifact-123")
	require.NoError(t, ioutil.WriteFile(src, []byte("artifact bytes"), 0644))

	dest := filepath.Join(dir, "out", "geode-win.zip")
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0755))
	require.NoError(t, moveFile(src, dest))

	data, err := ioutil.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "artifact bytes", string(data))

	// the source is gone once the copy has landed
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}

func Test_MoveFileOverwrites(t *testing.T) {
	dir, err := ioutil.TempDir("", "installer-fetch-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "geode-artifact-456")
	require.NoError(t, ioutil.WriteFile(src, []byte("fresh"), 0644))

	dest := filepath.Join(dir, "geode-win.zip")
	require.NoError(t, ioutil.WriteFile(dest, []byte("something stale"), 0644))

	require.NoError(t, moveFile(src, dest))

	data, err := ioutil.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}
