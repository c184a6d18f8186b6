package cli

import (
	"github.com/fabien-marty/github-push-release/internal/app"
	"github.com/urfave/cli/v2"
)

func pruneReleasesAction(cCtx *cli.Context) error {
	setDefaultLogger(cCtx)
	service, err := getService(cCtx, app.Config{
		PruneTagRegex: cCtx.String("tag-regex"),
	})
	if err != nil {
		return err
	}
	if err := service.DeleteReleases(); err != nil {
		return exitWithAPIError(err)
	}
	return nil
}

func newPruneReleasesApp() *cli.App {
	cliFlags := make([]cli.Flag, len(commonCliFlags))
	copy(cliFlags, commonCliFlags)
	cliFlags = append(cliFlags, &cli.StringFlag{
		Name:    "tag-regex",
		Value:   "",
		Usage:   "Regex to match tags whose release is deleted (if empty string (default) => every tag)",
		EnvVars: []string{"GPR_TAG_REGEX"},
	})
	return &cli.App{
		Name:   "github-prune-releases",
		Usage:  "Delete the GitHub releases (and their assets) of the repository tags",
		Action: pruneReleasesAction,
		Flags:  cliFlags,
	}
}

func PruneReleasesMain() {
	runApp(newPruneReleasesApp())
}
