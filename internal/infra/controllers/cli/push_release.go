package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fabien-marty/github-push-release/internal/app"
	"github.com/fabien-marty/github-push-release/internal/app/repo"
	"github.com/urfave/cli/v2"
)

// readVersion reads the base version from the version file and appends the patch level.
func readVersion(versionFilePath string, patchLevel string) (*repo.Version, error) {
	content, err := os.ReadFile(versionFilePath)
	if err != nil {
		return nil, fmt.Errorf("can't read the version file: %w", err)
	}
	return repo.NewVersion(string(content), patchLevel)
}

func pushReleaseAction(cCtx *cli.Context) error {
	setDefaultLogger(cCtx)
	bodyTemplateString := ""
	if cCtx.String("release-body-template-path") != "" {
		templateStringBytes, err := os.ReadFile(cCtx.String("release-body-template-path"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("Can't read the release body template file: %s", err), exitCodeConfiguration)
		}
		bodyTemplateString = string(templateStringBytes)
	}
	service, err := getService(cCtx, app.Config{
		TargetCommitish:    cCtx.String("target-commitish"),
		Draft:              cCtx.Bool("release-draft"),
		Prerelease:         cCtx.Bool("release-prerelease"),
		BodyTemplateString: bodyTemplateString,
	})
	if err != nil {
		return err
	}
	version, err := readVersion(cCtx.String("version-file"), cCtx.String("patch-level"))
	if err != nil {
		return cli.Exit(err.Error(), exitCodeConfiguration)
	}
	outcome, assets, err := service.PublishRelease(version, cCtx.Args().Slice())
	if err != nil {
		if errors.Is(err, app.ErrValidationFailed) {
			logValidationErrors(outcome.ValidationErrors)
			return cli.Exit(fmt.Sprintf("the release %s was rejected by GitHub", version.TagName()), exitCodeAPI)
		}
		return exitWithAPIError(err)
	}
	for _, asset := range assets {
		fmt.Fprintf(os.Stderr, "uploaded: %s\n", asset.BrowserDownloadURL)
	}
	fmt.Println(outcome.Release.TagName)
	return nil
}

func newPushReleaseApp() *cli.App {
	cliFlags := make([]cli.Flag, len(commonCliFlags))
	copy(cliFlags, commonCliFlags)
	cliFlags = append(cliFlags, &cli.StringFlag{
		Name:     "patch-level",
		Required: true,
		Usage:    "patch level appended to the base version (<base>.<patch-level>)",
		EnvVars:  []string{"PATCH_LEVEL"},
	})
	cliFlags = append(cliFlags, &cli.StringFlag{
		Name:    "version-file",
		Value:   "VERSION",
		Usage:   "path of the file containing the base version (ex: 2.3)",
		EnvVars: []string{"GPR_VERSION_FILE"},
	})
	cliFlags = append(cliFlags, &cli.StringFlag{
		Name:    "target-commitish",
		Value:   "master",
		Usage:   "branch (or commit) the release tag is created from (if the tag doesn't exist yet)",
		EnvVars: []string{"GPR_TARGET_COMMITISH"},
	})
	cliFlags = append(cliFlags, &cli.BoolFlag{
		Name:    "release-draft",
		Value:   false,
		Usage:   "if set, the release is created in draft mode",
		EnvVars: []string{"GPR_RELEASE_DRAFT"},
	})
	cliFlags = append(cliFlags, &cli.BoolFlag{
		Name:    "release-prerelease",
		Value:   false,
		Usage:   "if set, the release is flagged as a prerelease",
		EnvVars: []string{"GPR_RELEASE_PRERELEASE"},
	})
	cliFlags = append(cliFlags, &cli.StringFlag{
		Name:    "release-body-template-path",
		Value:   "",
		Usage:   "golang template path to generate the release body (default: the subject of the last commit)",
		EnvVars: []string{"GPR_RELEASE_BODY_TEMPLATE_PATH"},
	})
	return &cli.App{
		Name:      "github-push-release",
		Usage:     "Create a GitHub release for <VERSION file>.<PATCH_LEVEL> and upload the given files as assets",
		Action:    pushReleaseAction,
		ArgsUsage: "[FILE...]",
		Flags:     cliFlags,
	}
}

func PushReleaseMain() {
	runApp(newPushReleaseApp())
}
