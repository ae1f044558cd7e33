package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/westley-wess/portfolio/annotations"
	"github.com/westley-wess/portfolio/catalog"
)

var cmdComments = &cli.Command{
	Name:      "comments",
	Usage:     "show comments and the rating left on this device for a project",
	ArgsUsage: "<project-id>",
	Action:    runComments,
}

var cmdComment = &cli.Command{
	Name:      "comment",
	Usage:     "comment on a project",
	ArgsUsage: "<project-id> <text>",
	Action:    runComment,
}

var cmdRate = &cli.Command{
	Name:      "rate",
	Usage:     "rate a project from 1 to 5",
	ArgsUsage: "<project-id> <1-5>",
	Action:    runRate,
}

var cmdWhoami = &cli.Command{
	Name:   "whoami",
	Usage:  "print this device's anonymous identity",
	Action: runWhoami,
}

func projectIDArg(cctx *cli.Context) (string, error) {
	id := strings.TrimSpace(cctx.Args().First())
	if id == "" {
		return "", fmt.Errorf("need to provide a project id as an argument")
	}
	return id, nil
}

func runComments(cctx *cli.Context) error {
	projectID, err := projectIDArg(cctx)
	if err != nil {
		return err
	}
	store, err := openStore(cctx)
	if err != nil {
		return err
	}

	ratings := store.Ratings(projectID)
	if badge := catalog.FormatRating(store.AverageRating(projectID), len(ratings)); badge != "" {
		fmt.Printf("Rating: ★ %s\n", badge)
	}

	comments := store.Comments(projectID)
	if len(comments) == 0 {
		fmt.Println("No comments yet.")
		return nil
	}
	for _, c := range comments {
		fmt.Printf("%s (%s): %s\n", annotations.DisplayName(c.User), c.Timestamp.Local().Format(time.DateTime), c.Text)
	}
	return nil
}

func runComment(cctx *cli.Context) error {
	projectID, err := projectIDArg(cctx)
	if err != nil {
		return err
	}
	text := strings.Join(cctx.Args().Tail(), " ")

	store, err := openStore(cctx)
	if err != nil {
		return err
	}
	c, ok := store.AddComment(projectID, text, store.Identity())
	if !ok {
		return fmt.Errorf("comment text is empty")
	}
	fmt.Printf("Comment %s added as %s\n", c.ID, annotations.DisplayName(c.User))
	return nil
}

func runRate(cctx *cli.Context) error {
	projectID, err := projectIDArg(cctx)
	if err != nil {
		return err
	}
	value, err := strconv.Atoi(cctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("rating must be a whole number from 1 to 5")
	}

	store, err := openStore(cctx)
	if err != nil {
		return err
	}
	if _, ok := store.AddRating(projectID, value, store.Identity()); !ok {
		return fmt.Errorf("rating must be a whole number from 1 to 5")
	}
	fmt.Printf("Rated %s: ★ %s\n", projectID,
		catalog.FormatRating(store.AverageRating(projectID), len(store.Ratings(projectID))))
	return nil
}

func runWhoami(cctx *cli.Context) error {
	store, err := openStore(cctx)
	if err != nil {
		return err
	}
	id := store.Identity()
	fmt.Printf("%s (%s)\n", annotations.DisplayName(id), id)
	return nil
}
