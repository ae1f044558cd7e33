package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "api-url",
		Usage:   "base URL of the portfolio API",
		Value:   "http://localhost:8080",
		EnvVars: []string{"PORTFOLIO_API_URL"},
	},
	&cli.StringFlag{
		Name:    "token",
		Usage:   "bearer token sent with API requests",
		EnvVars: []string{"PORTFOLIO_TOKEN"},
	},
	&cli.StringFlag{
		Name:    "github-user",
		Usage:   "GitHub account whose repositories are merged into the catalog",
		Value:   "westley-wess",
		EnvVars: []string{"PORTFOLIO_GITHUB_USER"},
	},
	&cli.StringFlag{
		Name:    "store",
		Usage:   "annotation store path; a .db suffix selects sqlite (default: XDG data dir)",
		EnvVars: []string{"PORTFOLIO_STORE"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log requests and storage problems",
	},
}

func run(args []string) error {

	app := cli.App{
		Name:    "portfolio",
		Usage:   "browse the portfolio catalog and leave local comments and ratings",
		Version: versioninfo.Short(),
		Flags:   globalFlags,
		Before:  setupLogging,
	}
	app.Commands = []*cli.Command{
		cmdProjects,
		cmdComments,
		cmdComment,
		cmdRate,
		cmdWhoami,
		cmdContact,
		cmdHire,
		cmdCV,
		cmdPicture,
		cmdLinks,
	}
	return app.Run(args)
}
