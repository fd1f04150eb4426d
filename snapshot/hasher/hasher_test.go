package hasher

import (
	"encoding/hex"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twitter/fssnap/common/stats"
	"github.com/twitter/fssnap/os/temp"
	"github.com/twitter/fssnap/snapshot"
)

var (
	testHash1 string = "36f583dd16f4e1e201eb1e6f6d8e35a2ccb3bbe2658de46b4ffae7b0e9ed872e"
	testSize1 uint64 = 7
	testData1 []byte = []byte("abc1234")
)

func TestFileHasher(t *testing.T) {
	tmp, err := temp.TempDirDefault()
	require.NoError(t, err)
	defer tmp.Remove()
	require.NoError(t, tmp.WriteFile("test.txt", testData1))

	stat := stats.DefaultStatsReceiver()
	h, err := NewFileHasher(stat).Hash(tmp.Path("test.txt"), testSize1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, testHash1, h.String())
	assert.Equal(t, testHash1, hex.EncodeToString(h[:]))

	stats.VerifyStats("hasher", stat.Registry(), t, map[string]stats.Rule{
		"hasher/" + stats.HasherBytesReadCounter: {Checker: stats.Int64EqTest, Value: 7},
	})
}

func TestFileHasherDetectsChangedFile(t *testing.T) {
	tmp, err := temp.TempDirDefault()
	require.NoError(t, err)
	defer tmp.Remove()
	require.NoError(t, tmp.WriteFile("test.txt", testData1))

	_, err = NewFileHasher(nil).Hash(tmp.Path("test.txt"), testSize1+1, time.Now())
	_, ok := err.(*FileChangedError)
	assert.True(t, ok, "expected FileChangedError, got %v", err)
}

func TestFileHasherMissingFile(t *testing.T) {
	_, err := NewFileHasher(nil).Hash("/does/not/exist", 0, time.Now())
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestMemoHasherCallsDelegateOncePerKey(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mtime := time.Unix(100, 0)
	var want snapshot.ContentHash
	want[0] = 42

	delegate := snapshot.NewMockContentHasher(mockCtrl)
	delegate.EXPECT().Hash("/a", uint64(1), mtime).Return(want, nil).Times(1)
	delegate.EXPECT().Hash("/a", uint64(2), mtime).Return(snapshot.ContentHash{}, nil).Times(1)

	stat := stats.DefaultStatsReceiver()
	memo := NewMemoHasher(delegate, 10, stat)
	for i := 0; i < 3; i++ {
		got, err := memo.Hash("/a", 1, mtime)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := memo.Hash("/a", 2, mtime)
	require.NoError(t, err)
	assert.Equal(t, 2, memo.Len())

	stats.VerifyStats("memo", stat.Registry(), t, map[string]stats.Rule{
		"hasher/" + stats.HasherCacheHitCounter:  {Checker: stats.Int64EqTest, Value: 2},
		"hasher/" + stats.HasherCacheMissCounter: {Checker: stats.Int64EqTest, Value: 2},
	})
}

func TestMemoHasherDoesNotRememberErrors(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mtime := time.Unix(100, 0)
	delegate := snapshot.NewMockContentHasher(mockCtrl)
	delegate.EXPECT().Hash("/a", uint64(1), mtime).Return(snapshot.ContentHash{}, errors.New("busy")).Times(2)

	memo := NewMemoHasher(delegate, 0, nil)
	_, err := memo.Hash("/a", 1, mtime)
	assert.Error(t, err)
	_, err = memo.Hash("/a", 1, mtime)
	assert.Error(t, err)
	assert.Equal(t, 0, memo.Len())
}

func TestMemoHasherEvicts(t *testing.T) {
	tmp, err := temp.TempDirDefault()
	require.NoError(t, err)
	defer tmp.Remove()
	require.NoError(t, tmp.WriteFile("a", []byte("a")))
	require.NoError(t, tmp.WriteFile("b", []byte("b")))

	memo := NewMemoHasher(NewFileHasher(nil), 1, nil)
	_, err = memo.Hash(tmp.Path("a"), 1, time.Unix(1, 0))
	require.NoError(t, err)
	_, err = memo.Hash(tmp.Path("b"), 1, time.Unix(1, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, memo.Len())
}
