package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetcherLifecycle(t *testing.T) {
	f := NewFetcher[int]()
	assert.Equal(t, StatusIdle, f.Status())

	release := make(chan struct{})
	done := f.Start(context.Background(), func(context.Context) (int, error) {
		<-release
		return 7, nil
	})
	assert.Equal(t, StatusLoading, f.Status())

	close(release)
	<-done
	assert.Equal(t, StatusSucceeded, f.Status())
	assert.Equal(t, 7, f.Data())
	assert.NoError(t, f.Err())
}

func TestFetcherStartIsNoopUnlessIdle(t *testing.T) {
	f := NewFetcher[string]()
	var calls atomic.Int32
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		return "", errors.New("boom")
	}

	<-f.Start(context.Background(), fetch)
	<-f.Start(context.Background(), fetch)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, StatusFailed, f.Status())
	assert.EqualError(t, f.Err(), "boom")

	f.Reset()
	assert.Equal(t, StatusIdle, f.Status())
	assert.NoError(t, f.Err())
	<-f.Start(context.Background(), fetch)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetcherDetachDropsLateResults(t *testing.T) {
	f := NewFetcher[int]()
	release := make(chan struct{})
	done := f.Start(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	f.Detach()
	close(release)
	<-done

	assert.Equal(t, StatusLoading, f.Status())
	assert.Equal(t, 0, f.Data())
}

type fakeSource struct {
	projects    []Project
	projectsErr error
	synced      []json.RawMessage
	syncErr     error
	syncDelay   time.Duration
	username    string
}

func (s *fakeSource) ListProjects(ctx context.Context) ([]Project, error) {
	return s.projects, s.projectsErr
}

func (s *fakeSource) SyncGitHub(ctx context.Context, username string) ([]json.RawMessage, error) {
	s.username = username
	if s.syncDelay > 0 {
		select {
		case <-time.After(s.syncDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.synced, s.syncErr
}

func TestViewLoadMergesBothSources(t *testing.T) {
	src := &fakeSource{
		projects:  []Project{{ID: "1", Title: "A"}},
		synced:    []json.RawMessage{json.RawMessage(`"A"`), json.RawMessage(`"B"`)},
		syncDelay: 10 * time.Millisecond,
	}
	view := NewView(src, "wess-westley")
	defer view.Close()

	res := view.Load(context.Background())

	assert.Equal(t, "wess-westley", src.username)
	assert.Equal(t, []string{"A", "B"}, titles(res.Projects))
	assert.Equal(t, StatusSucceeded, res.ProjectsStatus)
	assert.Equal(t, StatusSucceeded, res.SyncStatus)
	assert.False(t, res.Empty())
}

func TestViewLoadSurvivesOneFailure(t *testing.T) {
	src := &fakeSource{
		projectsErr: errors.New("backend down"),
		synced:      []json.RawMessage{json.RawMessage(`"B"`)},
	}
	view := NewView(src, "me")

	res := view.Load(context.Background())

	assert.Equal(t, StatusFailed, res.ProjectsStatus)
	assert.EqualError(t, res.ProjectsErr, "backend down")
	assert.Equal(t, []string{"B"}, titles(res.Projects))
	assert.False(t, res.Empty())
}

func TestViewLoadBadSyncPayloadFailsOnlySync(t *testing.T) {
	src := &fakeSource{
		projects: []Project{{ID: "1", Title: "A"}},
		synced:   []json.RawMessage{json.RawMessage(`true`)},
	}
	res := NewView(src, "me").Load(context.Background())

	assert.Equal(t, StatusSucceeded, res.ProjectsStatus)
	assert.Equal(t, StatusFailed, res.SyncStatus)
	assert.Error(t, res.SyncErr)
	assert.Equal(t, []string{"A"}, titles(res.Projects))
}

func TestViewEmptyState(t *testing.T) {
	res := NewView(&fakeSource{}, "me").Load(context.Background())
	assert.True(t, res.Empty())
	assert.Empty(t, res.Projects)
}

func TestViewLoadKeepsCuratedProjectsWhenSyncTimesOut(t *testing.T) {
	src := &fakeSource{
		projects:  []Project{{ID: "1", Title: "A"}},
		synced:    []json.RawMessage{json.RawMessage(`"B"`)},
		syncDelay: time.Hour,
	}
	view := NewView(src, "me")
	defer view.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res := view.Load(ctx)
	assert.Equal(t, StatusSucceeded, res.ProjectsStatus)
	assert.Equal(t, StatusFailed, res.SyncStatus)
	assert.ErrorIs(t, res.SyncErr, context.DeadlineExceeded)
	assert.Equal(t, []string{"A"}, titles(res.Projects))
	assert.False(t, res.Empty())
}
