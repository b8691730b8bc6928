package papyrus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("create new library", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_library")
		library, err := Open(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, library)
		defer library.Close()

		assert.NotNil(t, library.PaperRepository())
		assert.NotNil(t, library.VectorManager())
		assert.NotNil(t, library.QueryCache())
		assert.Equal(t, defaultIndexName, library.VectorManager().ActiveIndex().Name)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A file where a directory is expected.
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("x"), 0o644))

		library, err := Open(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, library)
	})

	t.Run("custom index dimension", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "dim_library")
		library, err := Open(tmpDir, WithIndexDimension(384))
		require.NoError(t, err)
		defer library.Close()

		assert.Equal(t, 384, library.VectorManager().ActiveIndex().Dimension)
	})
}

func TestLibrary_Close(t *testing.T) {
	library, err := Open(filepath.Join(t.TempDir(), "close_library"))
	require.NoError(t, err)

	assert.NoError(t, library.Close())
}

func TestLibrary_FactoryMethods(t *testing.T) {
	library, err := Open(filepath.Join(t.TempDir(), "factory_library"))
	require.NoError(t, err)
	defer library.Close()

	t.Run("can create ingest pipeline", func(t *testing.T) {
		pipeline, err := library.NewIngestPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create retriever", func(t *testing.T) {
		retriever, err := library.NewRetriever()
		require.NoError(t, err)
		require.NotNil(t, retriever)
	})
}
