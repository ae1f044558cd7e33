package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/westley-wess/portfolio/annotations"
	"github.com/westley-wess/portfolio/catalog"
)

const emptyCatalogMessage = "No projects available yet. Stay tuned!"

var cmdProjects = &cli.Command{
	Name:  "projects",
	Usage: "list curated projects merged with GitHub repositories",
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "give up waiting for the API after this long",
			Value: defaultTimeout,
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print the merged catalog as JSON",
		},
	},
	Action: runProjects,
}

// catalogEntry is a merged project with its local annotations
type catalogEntry struct {
	catalog.Project
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
	CommentCount  int     `json:"comment_count"`
}

func runProjects(cctx *cli.Context) error {
	ctx, cancel := context.WithTimeout(cctx.Context, cctx.Duration("timeout"))
	defer cancel()

	store, err := openStore(cctx)
	if err != nil {
		return err
	}
	// loading the catalog is the first visit, which creates the identity
	store.Load()
	store.Identity()

	view := catalog.NewView(newAPIClient(cctx), cctx.String("github-user"))
	defer view.Close()

	result := view.Load(ctx)

	entries := annotate(result.Projects, store)
	if cctx.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	renderCatalog(os.Stdout, result, entries)
	return nil
}

func annotate(projects []catalog.Project, store *annotations.Store) []catalogEntry {
	entries := make([]catalogEntry, 0, len(projects))
	for _, p := range projects {
		entries = append(entries, catalogEntry{
			Project:       p,
			AverageRating: store.AverageRating(p.ID),
			RatingCount:   len(store.Ratings(p.ID)),
			CommentCount:  len(store.Comments(p.ID)),
		})
	}
	return entries
}

func renderCatalog(w io.Writer, result catalog.Result, entries []catalogEntry) {
	if result.ProjectsStatus == catalog.StatusFailed {
		fmt.Fprintf(w, "Error loading projects: %v\n\n", result.ProjectsErr)
	}
	if result.SyncStatus == catalog.StatusFailed {
		fmt.Fprintf(w, "Error syncing GitHub projects: %v\n\n", result.SyncErr)
	}
	if result.Empty() {
		fmt.Fprintln(w, emptyCatalogMessage)
		return
	}

	for i, e := range entries {
		header := fmt.Sprintf("%d. %s", i+1, e.Title)
		if e.Source == catalog.SourceGitHub {
			header += " [GitHub]"
		}
		if badge := catalog.FormatRating(e.AverageRating, e.RatingCount); badge != "" {
			header += "  ★ " + badge
		}
		fmt.Fprintln(w, header)
		fmt.Fprintf(w, "   id: %s\n", e.ID)
		if e.Description != "" {
			fmt.Fprintf(w, "   %s\n", strings.TrimSpace(e.Description))
		}
		if e.TechStack != "" {
			fmt.Fprintf(w, "   Tech: %s\n", e.TechStack)
		}
		if e.GithubURL != "" {
			fmt.Fprintf(w, "   Code: %s\n", e.GithubURL)
		}
		if e.DemoURL != "" {
			fmt.Fprintf(w, "   Demo: %s\n", e.DemoURL)
		}
		fmt.Fprintf(w, "   Comments: %d\n\n", e.CommentCount)
	}
}
