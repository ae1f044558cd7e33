package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/westley-wess/portfolio/client"
)

const defaultTimeout = 30 * time.Second

var cmdContact = &cli.Command{
	Name:  "contact",
	Usage: "send a message through the contact form",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "name", Required: true},
		&cli.StringFlag{Name: "email", Required: true},
		&cli.StringFlag{Name: "message", Required: true},
		&cli.StringFlag{Name: "type", Usage: "submission type", Value: "general"},
	},
	Action: runContact,
}

var cmdHire = &cli.Command{
	Name:  "hire",
	Usage: "send a hire request",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "name", Required: true},
		&cli.StringFlag{Name: "email", Required: true},
		&cli.StringFlag{Name: "phone", Required: true, Usage: "digits with optional leading +, e.g. +254712345678"},
		&cli.StringFlag{Name: "company", Required: true},
		&cli.StringFlag{Name: "role", Required: true},
		&cli.Float64Flag{Name: "salary", Required: true, Usage: "offered salary, up to 2 decimal places"},
		&cli.StringFlag{Name: "message"},
	},
	Action: runHire,
}

var cmdCV = &cli.Command{
	Name:   "cv",
	Usage:  "print the CV download link",
	Action: runCV,
}

var cmdPicture = &cli.Command{
	Name:   "picture",
	Usage:  "print the profile picture link",
	Action: runPicture,
}

var cmdLinks = &cli.Command{
	Name:   "links",
	Usage:  "list quick links",
	Action: runLinks,
}

// describeAPIError turns an API error into the message shown to the user
func describeAPIError(err error) error {
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s (HTTP %d)", apiErr.Message, apiErr.StatusCode)
	}
	return err
}

func runContact(cctx *cli.Context) error {
	ctx, cancel := context.WithTimeout(cctx.Context, defaultTimeout)
	defer cancel()

	err := newAPIClient(cctx).SubmitContact(ctx, client.ContactSubmission{
		Name:           cctx.String("name"),
		Email:          cctx.String("email"),
		Message:        cctx.String("message"),
		SubmissionType: cctx.String("type"),
	})
	if err != nil {
		return describeAPIError(err)
	}
	fmt.Println("Message sent. Thanks for reaching out!")
	return nil
}

func runHire(cctx *cli.Context) error {
	ctx, cancel := context.WithTimeout(cctx.Context, defaultTimeout)
	defer cancel()

	msg, err := newAPIClient(cctx).SubmitHire(ctx, client.HireRequest{
		ApplicantName:  cctx.String("name"),
		ApplicantEmail: cctx.String("email"),
		ApplicantPhone: cctx.String("phone"),
		CompanyName:    cctx.String("company"),
		Role:           cctx.String("role"),
		OfferedSalary:  cctx.Float64("salary"),
		Message:        cctx.String("message"),
	})
	if err != nil {
		return describeAPIError(err)
	}
	fmt.Println(msg)
	return nil
}

func runCV(cctx *cli.Context) error {
	ctx, cancel := context.WithTimeout(cctx.Context, defaultTimeout)
	defer cancel()

	url, err := newAPIClient(cctx).ProfileCV(ctx)
	if err != nil {
		return describeAPIError(err)
	}
	if url == "" {
		return fmt.Errorf("no CV is published")
	}
	fmt.Println(url)
	return nil
}

func runPicture(cctx *cli.Context) error {
	ctx, cancel := context.WithTimeout(cctx.Context, defaultTimeout)
	defer cancel()

	url, err := newAPIClient(cctx).ProfilePicture(ctx)
	if err != nil {
		return describeAPIError(err)
	}
	fmt.Println(url)
	return nil
}

func runLinks(cctx *cli.Context) error {
	ctx, cancel := context.WithTimeout(cctx.Context, defaultTimeout)
	defer cancel()

	links, err := newAPIClient(cctx).QuickLinks(ctx)
	if err != nil {
		return describeAPIError(err)
	}
	for _, l := range links {
		suffix := ""
		if l.IsDownload {
			suffix = " (download)"
		}
		fmt.Printf("%-16s %s%s\n", l.Title, l.URL, suffix)
	}
	return nil
}
