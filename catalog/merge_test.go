package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(ps []Project) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}

func TestMergeEmpty(t *testing.T) {
	merged := Merge(nil, nil)
	assert.NotNil(t, merged)
	assert.Empty(t, merged)
}

func TestMergeDropsSyncedDuplicates(t *testing.T) {
	authoritative := []Project{
		{ID: "1", Title: "A", Description: "from the database"},
		{ID: "2", Title: "C"},
	}
	synced := []Project{
		{Title: "A", Description: "Imported from GitHub"},
		{Title: "B"},
		{Title: "c"},
		{Title: "D"},
	}

	merged := Merge(authoritative, synced)

	assert.Equal(t, []string{"A", "C", "B", "c", "D"}, titles(merged))
	assert.Equal(t, "from the database", merged[0].Description)
	assert.Len(t, merged, len(authoritative)+3)
}

func TestMergeAssignsUniqueIDs(t *testing.T) {
	authoritative := []Project{
		{ID: "synced-2", Title: "Curated"},
		{Title: "No id"},
	}
	synced := []Project{{Title: "X"}, {Title: "Y"}, {ID: "gh-1", Title: "Z"}}

	merged := Merge(authoritative, synced)
	require.Len(t, merged, 5)

	seen := map[string]bool{}
	for _, p := range merged {
		require.NotEmpty(t, p.ID)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
	assert.Equal(t, "synced-2", merged[0].ID)
	assert.Equal(t, "synced-1", merged[1].ID)
	assert.Equal(t, "synced-3", merged[2].ID)
	assert.Equal(t, "synced-4", merged[3].ID)
	assert.Equal(t, "gh-1", merged[4].ID)
}

func TestMergeReassignsCollidingSyncedIDs(t *testing.T) {
	authoritative := []Project{{ID: "1", Title: "A"}}
	synced := []Project{
		{ID: "1", Title: "X"},
		{Title: "Y"},
		{ID: "gh-7", Title: "Z"},
		{ID: "gh-7", Title: "W"},
	}

	merged := Merge(authoritative, synced)
	require.Len(t, merged, 5)
	ids := make([]string, 0, len(merged))
	for _, p := range merged {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "synced-1", "synced-2", "gh-7", "synced-4"}, ids)
	assert.Equal(t, "1", synced[0].ID, "input is not modified")
}

func TestMergeIsPure(t *testing.T) {
	authoritative := []Project{{Title: "A"}}
	synced := []Project{{Title: "B"}}

	first := Merge(authoritative, synced)
	second := Merge(authoritative, synced)

	assert.Equal(t, first, second)
	assert.Empty(t, authoritative[0].ID)
	assert.Empty(t, synced[0].ID)
}

func TestMergeOneSideEmpty(t *testing.T) {
	synced := []Project{{Title: "B"}, {Title: "B"}}
	assert.Equal(t, []string{"B", "B"}, titles(Merge(nil, synced)))

	authoritative := []Project{{ID: "7", Title: "A"}}
	assert.Equal(t, authoritative, Merge(authoritative, nil))
}

func TestMergeEndToEnd(t *testing.T) {
	raw := []json.RawMessage{json.RawMessage(`"A"`), json.RawMessage(`"B"`)}
	synced, err := NormalizeSynced(raw, "wess-westley")
	require.NoError(t, err)

	merged := Merge([]Project{{ID: "42", Title: "A", Description: "Curated A", Source: SourceManual}}, synced)

	require.Len(t, merged, 2)
	assert.Equal(t, "A", merged[0].Title)
	assert.Equal(t, "Curated A", merged[0].Description)
	assert.Equal(t, "B", merged[1].Title)
	assert.Equal(t, "Imported from GitHub", merged[1].Description)
	assert.Equal(t, "synced-1", merged[1].ID)
}

func TestNormalizeSynced(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`"portfolio"`),
		json.RawMessage(` {"title":"weather-app","description":"Forecasts","tech_stack":"Go","github_url":"https://github.com/x/weather-app"}`),
	}

	projects, err := NormalizeSynced(raw, "Wess-Westley")
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, Project{
		Title:       "portfolio",
		Description: "Imported from GitHub",
		TechStack:   "Auto-detected",
		GithubURL:   "https://github.com/Wess-Westley/portfolio",
		DemoURL:     "https://wess-westley.github.io/portfolio/index.html",
		Source:      SourceGitHub,
	}, projects[0])
	assert.Equal(t, "weather-app", projects[1].Title)
	assert.Equal(t, "Go", projects[1].TechStack)
	assert.Equal(t, SourceGitHub, projects[1].Source)
}

func TestNormalizeSyncedRejectsOtherKinds(t *testing.T) {
	_, err := NormalizeSynced([]json.RawMessage{json.RawMessage(`42`)}, "me")
	assert.Error(t, err)

	_, err = NormalizeSynced([]json.RawMessage{json.RawMessage(``)}, "me")
	assert.Error(t, err)
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "", FormatRating(0, 0))
	assert.Equal(t, "4.0 (3)", FormatRating(4, 3))
	assert.Equal(t, "3.7 (3)", FormatRating(11.0/3.0, 3))
}
