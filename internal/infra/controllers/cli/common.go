package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fabien-marty/github-push-release/internal/app"
	"github.com/fabien-marty/github-push-release/internal/app/git"
	"github.com/fabien-marty/github-push-release/internal/app/repo"
	gitlocal "github.com/fabien-marty/github-push-release/internal/infra/adapters/git/local"
	repogithub "github.com/fabien-marty/github-push-release/internal/infra/adapters/repo/github"
	"github.com/fabien-marty/slog-helpers/pkg/slogc"
	"github.com/urfave/cli/v2"
)

const (
	exitCodeConfiguration = 1
	exitCodeAPI           = 2
)

var commonCliFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "log-level",
		Value:   "INFO",
		Usage:   "log level (DEBUG, INFO, WARN, ERROR)",
		EnvVars: []string{"LOG_LEVEL"},
	},
	&cli.StringFlag{
		Name:    "log-format",
		Value:   "text-human",
		Usage:   "log format (text-human, text, json, json-gcp)",
		EnvVars: []string{"LOG_FORMAT"},
	},
	&cli.StringFlag{
		Name:     "github-token",
		Usage:    "github token",
		Required: true,
		EnvVars:  []string{"GITHUB_TOKEN"},
	},
	&cli.StringFlag{
		Name:    "github-api-url",
		Value:   "https://api.github.com/",
		Usage:   "GitHub API root url (change it for GitHub Enterprise)",
		EnvVars: []string{"GPR_GITHUB_API_URL"},
	},
	&cli.StringFlag{
		Name:    "git-repository-local-path",
		Value:   ".",
		Usage:   "Git repository local path",
		EnvVars: []string{"GPR_GIT_REPOSITORY_LOCAL_PATH"},
	},
	&cli.StringFlag{
		Name:    "remote-name",
		Value:   "origin",
		Usage:   "name of the git remote used to guess the repository owner and name",
		EnvVars: []string{"GPR_REMOTE_NAME"},
	},
	&cli.StringFlag{
		Name:    "expected-remote-user",
		Value:   "git",
		Usage:   "expected ssh user in the remote url",
		EnvVars: []string{"GPR_EXPECTED_REMOTE_USER"},
	},
	&cli.StringFlag{
		Name:    "expected-remote-host",
		Value:   "github.com",
		Usage:   "expected ssh host in the remote url",
		EnvVars: []string{"GPR_EXPECTED_REMOTE_HOST"},
	},
}

func setDefaultLogger(cCtx *cli.Context) {
	logger := slogc.GetLogger(
		slogc.WithLevel(slogc.GetLogLevelFromString(cCtx.String("log-level"))),
		slogc.WithLogFormat(slogc.GetLogFormatFromString(cCtx.String("log-format"))),
	)
	slog.SetDefault(logger)
}

// getRemote guesses the repository coordinates from the local git configuration
// (this is done before any network call).
func getRemote(cCtx *cli.Context, gitLocalAdapter git.Port) (*git.Remote, error) {
	remoteName := cCtx.String("remote-name")
	remote, err := git.New(gitLocalAdapter).GuessRemote(remoteName, cCtx.String("expected-remote-user"), cCtx.String("expected-remote-host"))
	if err != nil {
		expected := fmt.Sprintf("%s@%s", cCtx.String("expected-remote-user"), cCtx.String("expected-remote-host"))
		return nil, cli.Exit(fmt.Sprintf("Was expecting the url of the %q remote to start with something under %s: %s", remoteName, expected, err), exitCodeConfiguration)
	}
	slog.Debug(fmt.Sprintf("Repository owner: %s, repository name: %s", remote.Owner, remote.Project))
	return remote, nil
}

// getService builds the application service, appConfig owner/name are set from the guessed remote.
func getService(cCtx *cli.Context, appConfig app.Config) (*app.Service, error) {
	gitLocalAdapter := gitlocal.NewAdapter(gitlocal.AdapterOptions{
		LocalGitPath: cCtx.String("git-repository-local-path"),
	})
	remote, err := getRemote(cCtx, gitLocalAdapter)
	if err != nil {
		return nil, err
	}
	repoGithubAdapter, err := repogithub.NewAdapter(remote.Owner, remote.Project, repogithub.AdapterOptions{
		Token:   cCtx.String("github-token"),
		BaseURL: cCtx.String("github-api-url"),
	})
	if err != nil {
		return nil, cli.Exit(err.Error(), exitCodeConfiguration)
	}
	appConfig.RepoOwner = remote.Owner
	appConfig.RepoName = remote.Project
	return app.NewService(appConfig, repoGithubAdapter, gitLocalAdapter), nil
}

func logValidationErrors(validationErrors []repo.ValidationError) {
	for _, e := range validationErrors {
		slog.Error(fmt.Sprintf("error in field %q : %q", e.Field, e.Code), slog.String("resource", e.Resource), slog.String("message", e.Message))
	}
}

// exitWithAPIError converts an error returned by the service into a cli exit error
// (forge validation errors are logged field by field).
func exitWithAPIError(err error) error {
	var apiErr *repo.APIError
	if errors.As(err, &apiErr) {
		logValidationErrors(apiErr.ValidationErrors())
	}
	return cli.Exit(err.Error(), exitCodeAPI)
}

func runApp(app *cli.App) {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "bad CLI arguments: %s\n", err)
		os.Exit(1)
	}
}
