package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/westley-wess/portfolio/annotations"
	"github.com/westley-wess/portfolio/catalog"
)

func TestRenderCatalogEmptyState(t *testing.T) {
	var buf bytes.Buffer
	renderCatalog(&buf, catalog.Result{
		ProjectsStatus: catalog.StatusSucceeded,
		SyncStatus:     catalog.StatusSucceeded,
	}, nil)
	assert.Equal(t, emptyCatalogMessage+"\n", buf.String())
}

func TestRenderCatalogShowsErrorsInline(t *testing.T) {
	var buf bytes.Buffer
	result := catalog.Result{
		Projects:       []catalog.Project{{ID: "synced-0", Title: "tool", Source: catalog.SourceGitHub}},
		ProjectsStatus: catalog.StatusFailed,
		ProjectsErr:    errors.New("api error (status 500): boom"),
		SyncStatus:     catalog.StatusSucceeded,
	}
	renderCatalog(&buf, result, []catalogEntry{{Project: result.Projects[0]}})

	out := buf.String()
	assert.Contains(t, out, "Error loading projects: api error (status 500): boom")
	assert.Contains(t, out, "1. tool [GitHub]")
	assert.NotContains(t, out, emptyCatalogMessage)
	assert.NotContains(t, out, "★")
}

func TestRenderCatalogBothFailed(t *testing.T) {
	var buf bytes.Buffer
	renderCatalog(&buf, catalog.Result{
		ProjectsStatus: catalog.StatusFailed,
		ProjectsErr:    errors.New("down"),
		SyncStatus:     catalog.StatusFailed,
		SyncErr:        errors.New("rate limited"),
	}, nil)

	out := buf.String()
	assert.Contains(t, out, "Error loading projects: down")
	assert.Contains(t, out, "Error syncing GitHub projects: rate limited")
	assert.NotContains(t, out, emptyCatalogMessage)
}

func TestAnnotateAddsRatingBadgeAndCounts(t *testing.T) {
	store := annotations.NewStore(annotations.NewMemoryRepository(), annotations.WithClock(func() time.Time {
		return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	}))
	store.AddRating("p1", 5, "user-aaaaaaaa")
	store.AddRating("p1", 4, "user-aaaaaaaa")
	store.AddComment("p1", "great", "user-aaaaaaaa")

	entries := annotate([]catalog.Project{{ID: "p1", Title: "portfolio"}, {ID: "p2", Title: "other"}}, store)
	require.Len(t, entries, 2)
	assert.Equal(t, 4.5, entries[0].AverageRating)
	assert.Equal(t, 2, entries[0].RatingCount)
	assert.Equal(t, 1, entries[0].CommentCount)

	var buf bytes.Buffer
	renderCatalog(&buf, catalog.Result{
		Projects:       []catalog.Project{entries[0].Project, entries[1].Project},
		ProjectsStatus: catalog.StatusSucceeded,
		SyncStatus:     catalog.StatusSucceeded,
	}, entries)
	assert.Contains(t, buf.String(), "1. portfolio  ★ 4.5 (2)")
	assert.Contains(t, buf.String(), "2. other\n")
}

func TestOpenRepositoryBySuffix(t *testing.T) {
	dir := t.TempDir()

	repo, err := openRepository(filepath.Join(dir, "annotations.json"))
	require.NoError(t, err)
	assert.IsType(t, &annotations.FileRepository{}, repo)

	repo, err = openRepository(filepath.Join(dir, "annotations.db"))
	require.NoError(t, err)
	assert.IsType(t, &annotations.GormRepository{}, repo)
}
