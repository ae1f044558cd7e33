package catalog

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"
)

// Source is the API the catalog reads from.
type Source interface {
	ListProjects(ctx context.Context) ([]Project, error)
	SyncGitHub(ctx context.Context, username string) ([]json.RawMessage, error)
}

// Result is one rendering of the catalog.
type Result struct {
	Projects       []Project
	ProjectsStatus Status
	ProjectsErr    error
	SyncStatus     Status
	SyncErr        error
}

// Empty is true when there is nothing to show and nothing went wrong, the
// case for an empty-state message rather than an error.
func (r Result) Empty() bool {
	return len(r.Projects) == 0 &&
		r.ProjectsStatus == StatusSucceeded &&
		r.SyncStatus == StatusSucceeded
}

// View runs the curated project fetch and the GitHub sync independently and
// merges whatever they produced.
type View struct {
	source Source
	owner  string

	Projects *Fetcher[[]Project]
	Synced   *Fetcher[[]Project]
}

// NewView creates a view syncing the repositories of the GitHub user owner.
func NewView(source Source, owner string) *View {
	return &View{
		source:   source,
		owner:    owner,
		Projects: NewFetcher[[]Project](),
		Synced:   NewFetcher[[]Project](),
	}
}

// Load starts both fetches (if idle), waits for both to finish or for ctx to
// end, and returns the merged catalog. A source that failed or is still
// unresolved when ctx ends contributes no projects and is reported as failed
// in the result, with ctx's error for the unresolved one.
func (v *View) Load(ctx context.Context) Result {
	projectsDone := v.Projects.Start(ctx, v.source.ListProjects)
	syncedDone := v.Synced.Start(ctx, v.sync)

	var g errgroup.Group
	for _, done := range []<-chan struct{}{projectsDone, syncedDone} {
		g.Go(func() error {
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	waitErr := g.Wait()

	r := v.Snapshot()
	if waitErr != nil {
		if !r.ProjectsStatus.Terminal() {
			r.ProjectsStatus, r.ProjectsErr = StatusFailed, waitErr
		}
		if !r.SyncStatus.Terminal() {
			r.SyncStatus, r.SyncErr = StatusFailed, waitErr
		}
	}
	return r
}

// Snapshot merges the current state of both fetchers without waiting.
func (v *View) Snapshot() Result {
	r := Result{
		ProjectsStatus: v.Projects.Status(),
		ProjectsErr:    v.Projects.Err(),
		SyncStatus:     v.Synced.Status(),
		SyncErr:        v.Synced.Err(),
	}

	var authoritative, synced []Project
	if r.ProjectsStatus == StatusSucceeded {
		authoritative = v.Projects.Data()
	}
	if r.SyncStatus == StatusSucceeded {
		synced = v.Synced.Data()
	}
	r.Projects = Merge(authoritative, synced)
	return r
}

// Close detaches both fetchers so nothing in flight updates the view.
func (v *View) Close() {
	v.Projects.Detach()
	v.Synced.Detach()
}

func (v *View) sync(ctx context.Context) ([]Project, error) {
	raw, err := v.source.SyncGitHub(ctx, v.owner)
	if err != nil {
		return nil, err
	}
	return NormalizeSynced(raw, v.owner)
}
