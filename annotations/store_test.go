package annotations

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newTestStore(t *testing.T, repo Repository) *Store {
	t.Helper()
	return NewStore(repo, WithClock(clock))
}

func TestAverageRating(t *testing.T) {
	s := newTestStore(t, NewMemoryRepository())

	assert.Equal(t, 0.0, s.AverageRating("p1"))

	for _, v := range []int{5, 3, 4} {
		_, ok := s.AddRating("p1", v, "user-aaaaaaaa")
		require.True(t, ok)
	}
	assert.Equal(t, 4.0, s.AverageRating("p1"))

	_, ok := s.AddRating("p2", 5, "user-aaaaaaaa")
	require.True(t, ok)
	_, ok = s.AddRating("p2", 4, "user-aaaaaaaa")
	require.True(t, ok)
	assert.Equal(t, 4.5, s.AverageRating("p2"))
}

func TestAddRatingRejectsUnsetAndOutOfRange(t *testing.T) {
	repo := NewMemoryRepository()
	s := newTestStore(t, repo)

	for _, v := range []int{0, -1, 6} {
		_, ok := s.AddRating("p1", v, "u")
		assert.False(t, ok, "value %d", v)
	}
	assert.Empty(t, s.Ratings("p1"))
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	repo := NewMemoryRepository()
	s := newTestStore(t, repo)

	_, ok := s.AddComment("p1", "first", "user-aaaaaaaa")
	require.True(t, ok)

	_, ok = s.AddComment("p1", "", "user-aaaaaaaa")
	assert.False(t, ok)
	_, ok = s.AddComment("p1", "   \n\t", "user-aaaaaaaa")
	assert.False(t, ok)

	assert.Len(t, s.Comments("p1"), 1)
}

func TestAddCommentPersists(t *testing.T) {
	repo := NewMemoryRepository()
	s := newTestStore(t, repo)

	c, ok := s.AddComment("p1", "  nice work  ", "user-12345678")
	require.True(t, ok)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "nice work", c.Text)
	assert.Equal(t, "user-12345678", c.User)
	assert.Equal(t, fixedNow, c.Timestamp)

	raw, err := repo.Get(CommentsKey)
	require.NoError(t, err)
	var stored Comments
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored["p1"], 1)
	assert.Equal(t, c.ID, stored["p1"][0].ID)

	// a fresh store on the same medium sees it
	reopened := newTestStore(t, repo)
	comments, _ := reopened.Load()
	assert.Equal(t, []Comment{c}, comments["p1"])
}

func TestPurgeExpired(t *testing.T) {
	blob := map[string][]Comment{
		"p1": {
			{ID: "old", Timestamp: fixedNow.Add(-31 * 24 * time.Hour)},
			{ID: "recent", Timestamp: fixedNow.Add(-29 * 24 * time.Hour)},
			{ID: "edge", Timestamp: fixedNow.Add(-DefaultRetention)},
		},
		"p2": {
			{ID: "gone", Timestamp: fixedNow.Add(-40 * 24 * time.Hour)},
		},
	}

	purged := PurgeExpired(blob, fixedNow, DefaultRetention)

	require.Contains(t, purged, "p1")
	var ids []string
	for _, c := range purged["p1"] {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"recent", "edge"}, ids)
	assert.NotContains(t, purged, "p2")
	assert.Len(t, blob["p1"], 3, "input is not modified")
}

func TestLoadPurgesAndWritesBack(t *testing.T) {
	repo := NewMemoryRepository()
	ratings := Ratings{
		"p1": {
			{ID: "r-old", Value: 1, Timestamp: fixedNow.Add(-31 * 24 * time.Hour)},
			{ID: "r-new", Value: 5, Timestamp: fixedNow.Add(-29 * 24 * time.Hour)},
		},
	}
	raw, err := json.Marshal(ratings)
	require.NoError(t, err)
	require.NoError(t, repo.Put(RatingsKey, raw))

	s := newTestStore(t, repo)
	_, loaded := s.Load()
	require.Len(t, loaded["p1"], 1)
	assert.Equal(t, "r-new", loaded["p1"][0].ID)
	assert.Equal(t, 5.0, s.AverageRating("p1"))

	persisted, err := repo.Get(RatingsKey)
	require.NoError(t, err)
	var back Ratings
	require.NoError(t, json.Unmarshal(persisted, &back))
	require.Len(t, back["p1"], 1)
	assert.Equal(t, "r-new", back["p1"][0].ID)
}

func TestLoadIsolatesCorruptBlobs(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.Put(CommentsKey, []byte(`{"p1":[{"id":"c1","text":"hello","user":"user-aaaaaaaa","timestamp":"2026-10-17T09:30:00.000Z"}]}`)))
	require.NoError(t, repo.Put(RatingsKey, []byte(`{"p1": [ {"value": 5,`)))

	comments, ratings := newTestStore(t, repo).Load()

	assert.Empty(t, ratings)
	require.Len(t, comments["p1"], 1)
	assert.Equal(t, "hello", comments["p1"][0].Text)
}

func TestLoadDropsOnlyUnreadableEntries(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.Put(CommentsKey, []byte(`{
		"p1":[{"id":"c1","text":"keep me","user":"user-aaaaaaaa","timestamp":"2026-10-17T09:30:00.000Z"}],
		"p2":[{"id":"c2","text":"bad time","user":"user-aaaaaaaa","timestamp":""},
		      {"id":"c3","text":"good time","user":"user-aaaaaaaa","timestamp":"2026-10-16T08:00:00Z"}]
	}`)))

	comments, _ := newTestStore(t, repo).Load()
	require.Len(t, comments["p1"], 1)
	assert.Equal(t, "keep me", comments["p1"][0].Text)
	require.Len(t, comments["p2"], 1)
	assert.Equal(t, "c3", comments["p2"][0].ID)

	persisted, err := repo.Get(CommentsKey)
	require.NoError(t, err)
	var back Comments
	require.NoError(t, json.Unmarshal(persisted, &back))
	assert.Len(t, back["p1"], 1)
	assert.Len(t, back["p2"], 1)
}

// flakyRepository fails reads of one key and records writes.
type flakyRepository struct {
	*MemoryRepository
	failKey string
	written []string
}

func (f *flakyRepository) Get(key string) ([]byte, error) {
	if key == f.failKey {
		return nil, errors.New("disk busy")
	}
	return f.MemoryRepository.Get(key)
}

func (f *flakyRepository) Put(key string, value []byte) error {
	f.written = append(f.written, key)
	return f.MemoryRepository.Put(key, value)
}

func TestLoadLeavesUnreadableBlobInPlace(t *testing.T) {
	mem := NewMemoryRepository()
	stored := []byte(`{"p1":[{"id":"c1","text":"hello","user":"user-aaaaaaaa","timestamp":"2026-10-17T09:30:00Z"}]}`)
	require.NoError(t, mem.Put(CommentsKey, stored))
	repo := &flakyRepository{MemoryRepository: mem, failKey: CommentsKey}

	comments, _ := newTestStore(t, repo).Load()
	assert.Empty(t, comments)
	assert.Equal(t, []string{RatingsKey}, repo.written)

	after, err := mem.Get(CommentsKey)
	require.NoError(t, err)
	assert.JSONEq(t, string(stored), string(after))
}

type brokenRepository struct {
	puts int
}

func (b *brokenRepository) Get(string) ([]byte, error) {
	return nil, errors.New("storage disabled")
}

func (b *brokenRepository) Put(string, []byte) error {
	b.puts++
	return errors.New("quota exceeded")
}

func TestUnavailableStorageDoesNotFail(t *testing.T) {
	repo := &brokenRepository{}
	s := newTestStore(t, repo)

	comments, ratings := s.Load()
	assert.Empty(t, comments)
	assert.Empty(t, ratings)

	c, ok := s.AddComment("p1", "still works", "u")
	assert.True(t, ok)
	assert.Equal(t, "still works", c.Text)
	assert.Len(t, s.Comments("p1"), 1)

	id := s.Identity()
	assert.Regexp(t, `^user-[0-9a-f]{8}$`, id)
	assert.Positive(t, repo.puts)
}

func TestIdentityIsCreatedOnceAndReused(t *testing.T) {
	repo := NewMemoryRepository()

	first := newTestStore(t, repo).Identity()
	assert.True(t, regexp.MustCompile(`^user-[0-9a-f]{8}$`).MatchString(first), first)

	second := newTestStore(t, repo).Identity()
	assert.Equal(t, first, second)

	raw, err := repo.Get(IdentityKey)
	require.NoError(t, err)
	assert.Equal(t, first, string(raw))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "User 1a2b3c4d", DisplayName("user-1a2b3c4d"))
	assert.Equal(t, "someone", DisplayName("someone"))
}
