package annotations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func exerciseRepository(t *testing.T, repo Repository) {
	t.Helper()

	_, err := repo.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Put(IdentityKey, []byte("user-0badc0de")))
	require.NoError(t, repo.Put(CommentsKey, []byte(`{"p1":[]}`)))
	require.NoError(t, repo.Put(CommentsKey, []byte(`{}`)))

	v, err := repo.Get(IdentityKey)
	require.NoError(t, err)
	assert.Equal(t, "user-0badc0de", string(v))

	v, err = repo.Get(CommentsKey)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(v))
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryRepository())
}

func TestFileRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "annotations.json")
	exerciseRepository(t, NewFileRepository(path))

	// survives a new handle on the same file
	v, err := NewFileRepository(path).Get(IdentityKey)
	require.NoError(t, err)
	assert.Equal(t, "user-0badc0de", string(v))
}

func TestFileRepositoryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	repo := NewFileRepository(path)

	_, err := repo.Get(CommentsKey)
	assert.Error(t, err)

	// the store degrades to empty and rewrites a clean file
	comments, ratings := NewStore(repo, WithClock(clock)).Load()
	assert.Empty(t, comments)
	assert.Empty(t, ratings)

	v, err := repo.Get(RatingsKey)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(v))
}

func TestGormRepository(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo, err := NewGormRepository(db)
	require.NoError(t, err)
	exerciseRepository(t, repo)
}

func TestOpenSQLiteRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.db")
	repo, err := OpenSQLiteRepository(path)
	require.NoError(t, err)

	s := NewStore(repo, WithClock(clock))
	_, ok := s.AddRating("p1", 3, s.Identity())
	require.True(t, ok)

	reopened, err := OpenSQLiteRepository(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, NewStore(reopened, WithClock(clock)).AverageRating("p1"))
}
