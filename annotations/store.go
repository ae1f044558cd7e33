// Package annotations keeps visitor comments and ratings for catalog projects
// on the visitor's own device. Nothing here is authenticated or shared.
package annotations

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Storage keys
const (
	CommentsKey = "projectComments"
	RatingsKey  = "projectRatings"
	IdentityKey = "userIdentity"
)

// DefaultRetention is how long comments and ratings are kept.
const DefaultRetention = 30 * 24 * time.Hour

type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

func (c Comment) When() time.Time { return c.Timestamp }

type Rating struct {
	ID        string    `json:"id"`
	Value     int       `json:"value"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

func (r Rating) When() time.Time { return r.Timestamp }

// Comments and Ratings map a project id to its entries, oldest first.
type (
	Comments map[string][]Comment
	Ratings  map[string][]Rating
)

type entry interface {
	Comment | Rating
	When() time.Time
}

// PurgeExpired returns a copy of blob holding only entries no older than
// window at now. Project ids left without entries are dropped.
func PurgeExpired[T entry](blob map[string][]T, now time.Time, window time.Duration) map[string][]T {
	out := make(map[string][]T, len(blob))
	for projectID, entries := range blob {
		var kept []T
		for _, e := range entries {
			if now.Sub(e.When()) <= window {
				kept = append(kept, e)
			}
		}
		if len(kept) > 0 {
			out[projectID] = kept
		}
	}
	return out
}

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithRetention(window time.Duration) Option {
	return func(s *Store) { s.retention = window }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Store is the device-local annotation store. Reads that fail degrade to
// empty state and writes that fail are logged; neither is reported to the
// caller. Two processes sharing one Repository race on the last write.
type Store struct {
	mu        sync.Mutex
	repo      Repository
	logger    zerolog.Logger
	now       func() time.Time
	retention time.Duration

	loaded   bool
	comments Comments
	ratings  Ratings
	identity string
}

func NewStore(repo Repository, opts ...Option) *Store {
	s := &Store{
		repo:      repo,
		logger:    log.With().Str("component", "annotationStore").Logger(),
		now:       time.Now,
		retention: DefaultRetention,
		comments:  Comments{},
		ratings:   Ratings{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads comments and ratings, drops expired entries and writes the
// purged blobs straight back. Each blob degrades to empty on its own.
func (s *Store) Load() (Comments, Ratings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	return copyBlob(s.comments), copyBlob(s.ratings)
}

func (s *Store) load() {
	comments, commentsRead := readBlob[Comment](s, CommentsKey)
	ratings, ratingsRead := readBlob[Rating](s, RatingsKey)

	now := s.now()
	s.comments = PurgeExpired(comments, now, s.retention)
	s.ratings = PurgeExpired(ratings, now, s.retention)
	s.loaded = true

	// a blob that could not be read is left as stored
	if commentsRead {
		s.writeBlob(CommentsKey, s.comments)
	}
	if ratingsRead {
		s.writeBlob(RatingsKey, s.ratings)
	}
}

func (s *Store) ensureLoaded() {
	if !s.loaded {
		s.load()
	}
}

// AddComment appends a comment to projectID. Blank text is rejected and
// nothing is stored.
func (s *Store) AddComment(projectID, text, user string) (Comment, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	c := Comment{
		ID:        uuid.NewString(),
		Text:      text,
		User:      user,
		Timestamp: s.now().UTC(),
	}
	s.comments[projectID] = append(s.comments[projectID], c)
	s.writeBlob(CommentsKey, s.comments)
	return c, true
}

// AddRating appends a 1-5 rating to projectID. Any other value, including the
// unset 0, is rejected and nothing is stored.
func (s *Store) AddRating(projectID string, value int, user string) (Rating, bool) {
	if value < 1 || value > 5 {
		return Rating{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	r := Rating{
		ID:        uuid.NewString(),
		Value:     value,
		User:      user,
		Timestamp: s.now().UTC(),
	}
	s.ratings[projectID] = append(s.ratings[projectID], r)
	s.writeBlob(RatingsKey, s.ratings)
	return r, true
}

// AverageRating is the unrounded mean rating of projectID, 0 without ratings.
func (s *Store) AverageRating(projectID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	ratings := s.ratings[projectID]
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	return float64(sum) / float64(len(ratings))
}

func (s *Store) Comments(projectID string) []Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return append([]Comment(nil), s.comments[projectID]...)
}

func (s *Store) Ratings(projectID string) []Rating {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return append([]Rating(nil), s.ratings[projectID]...)
}

// Identity returns the device's anonymous label, creating "user-<8 hex>" on
// first use. It never expires.
func (s *Store) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity != "" {
		return s.identity
	}

	raw, err := s.repo.Get(IdentityKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.Warn().Err(err).Msg("Failed to read user identity, creating a new one")
	}
	if id := strings.TrimSpace(string(raw)); err == nil && id != "" {
		s.identity = id
		return id
	}

	s.identity = NewIdentity()
	if err := s.repo.Put(IdentityKey, []byte(s.identity)); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist user identity")
	}
	return s.identity
}

// NewIdentity generates an anonymous label of the form user-<8 hex>.
func NewIdentity() string {
	return "user-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// DisplayName turns "user-1a2b3c4d" into "User 1a2b3c4d".
func DisplayName(identity string) string {
	if rest, ok := strings.CutPrefix(identity, "user-"); ok {
		return "User " + rest
	}
	return identity
}

// readBlob decodes the blob stored at key, dropping entries that do not
// decode. ok is false when the repository itself failed and the stored blob
// is unknown; missing or corrupt blobs decode as empty with ok true.
func readBlob[T entry](s *Store, key string) (blob map[string][]T, ok bool) {
	raw, err := s.repo.Get(key)
	if errors.Is(err, ErrNotFound) {
		return nil, true
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to read annotations, starting empty")
		return nil, false
	}

	var stored map[string][]json.RawMessage
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("Discarding unreadable annotations")
		return nil, true
	}

	blob = make(map[string][]T, len(stored))
	for projectID, entries := range stored {
		for _, e := range entries {
			var v T
			if err := json.Unmarshal(e, &v); err != nil {
				s.logger.Debug().Err(err).Str("key", key).Str("projectID", projectID).Msg("Dropping unreadable annotation")
				continue
			}
			blob[projectID] = append(blob[projectID], v)
		}
	}
	return blob, true
}

func (s *Store) writeBlob(key string, blob any) {
	data, err := json.Marshal(blob)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to encode annotations")
		return
	}
	if err := s.repo.Put(key, data); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to persist annotations")
	}
}

func copyBlob[T any](blob map[string][]T) map[string][]T {
	out := make(map[string][]T, len(blob))
	for k, v := range blob {
		out[k] = append([]T(nil), v...)
	}
	return out
}
