package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twitter/fssnap/os/temp"
)

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"default", "follow"}, PresetNames())

	c, err := GetConfig(DefaultConfigName)
	require.NoError(t, err)
	assert.False(t, c.FollowSymlinks)

	c, err = GetConfig("follow")
	require.NoError(t, err)
	assert.True(t, c.FollowSymlinks)

	_, err = GetConfig("nope")
	assert.Error(t, err)
}

func TestParseOverlaysBase(t *testing.T) {
	base := Config{FollowSymlinks: true, HashCacheSize: 10}
	c, err := Parse(base, []byte(`{"excludes": [".git", "*.pyc"]}`))
	require.NoError(t, err)
	assert.Equal(t, Config{FollowSymlinks: true, HashCacheSize: 10, Excludes: []string{".git", "*.pyc"}}, c)

	c, err = Parse(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, c)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse(Config{}, []byte(`{"excludes": "x"`))
	assert.Error(t, err)

	_, err = Parse(Config{}, []byte(`{"excludes": ["[a-"]}`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	tmp, err := temp.TempDirDefault()
	require.NoError(t, err)
	defer tmp.Remove()
	require.NoError(t, tmp.WriteFile("scan.json", []byte(`{"followSymlinks": true}`)))

	c, err := LoadFile(Config{}, tmp.Path("scan.json"))
	require.NoError(t, err)
	assert.True(t, c.FollowSymlinks)

	_, err = LoadFile(Config{}, tmp.Path("missing.json"))
	assert.Error(t, err)
}

func TestExcluded(t *testing.T) {
	c := Config{Excludes: []string{"*.o", "build/out"}}
	assert.True(t, c.excluded("x.o", "src/x.o"))
	assert.True(t, c.excluded("out", "build/out"))
	assert.False(t, c.excluded("out", "src/out"))
	assert.False(t, c.excluded("x.c", "src/x.c"))
}
