package fsblob

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/papyrus/storage"
)

func TestStore_UploadAndGetURL(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	url, err := store.Upload(ctx, []byte("%PDF-1.4 fake"), "papers/1706.03762.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"))

	data, err := os.ReadFile(strings.TrimPrefix(url, "file://"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))

	got, err := store.GetURL(ctx, "papers/1706.03762.pdf")
	require.NoError(t, err)
	assert.Equal(t, url, got)
}

func TestStore_UploadOverwrites(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	_, err = store.Upload(ctx, []byte("first"), "doc.txt")
	require.NoError(t, err)
	url, err := store.Upload(ctx, []byte("second"), "doc.txt")
	require.NoError(t, err)

	data, err := os.ReadFile(strings.TrimPrefix(url, "file://"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestStore_GetURLMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.GetURL(context.Background(), "nope.pdf")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_RejectsTraversal(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), []byte("x"), "../escape.txt")
	assert.Error(t, err)

	_, err = store.Upload(context.Background(), []byte("x"), "/etc/passwd")
	assert.Error(t, err)
}
