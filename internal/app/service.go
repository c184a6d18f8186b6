package app

import (
	"bytes"
	"errors"
	"log/slog"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/fabien-marty/github-push-release/internal/app/git"
	"github.com/fabien-marty/github-push-release/internal/app/repo"
	"github.com/m-mizutani/goerr/v2"
)

// ErrValidationFailed is returned by PublishRelease when the forge rejected the release payload
var ErrValidationFailed = errors.New("release validation failed")

const defaultTargetCommitish = "master"

// Service is the main application service
type Service struct {
	config      Config
	repoService *repo.Service
	gitService  *git.Service
	logger      *slog.Logger
}

// NewService creates a new Service
func NewService(config Config, repoAdapter repo.Port, gitAdapter git.Port) *Service {
	if config.TargetCommitish == "" {
		config.TargetCommitish = defaultTargetCommitish
	}
	return &Service{
		config:      config,
		repoService: repo.New(repoAdapter),
		gitService:  git.New(gitAdapter),
		logger:      slog.Default(),
	}
}

// bodyTemplateData is the object given to the release body template
type bodyTemplateData struct {
	Version       string // ex: "1.2.5"
	TagName       string // ex: "v1.2.5"
	Name          string // release display name
	CommitSubject string // first line of the last commit message
	Owner         string
	Project       string
}

func (s *Service) renderBody(data bodyTemplateData) (string, error) {
	bodyTemplate, err := template.New("body").Funcs(sprig.TxtFuncMap()).Parse(s.config.BodyTemplateString)
	if err != nil {
		return "", goerr.Wrap(err, "can't parse the release body template")
	}
	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, data); err != nil {
		return "", goerr.Wrap(err, "can't execute the release body template", goerr.V("data", data))
	}
	return body.String(), nil
}

// CreateRelease creates a release with the given overrides merged (shallow, overrides win)
// on top of the defaults: target = configured target commitish, body = last commit subject.
// A validation failure reported by the forge is returned as an outcome (not as an error).
func (s *Service) CreateRelease(overrides repo.ReleaseRequest) (*repo.CreationOutcome, error) {
	subject, err := s.gitService.GetLastCommitSubject()
	if err != nil {
		return nil, err
	}
	draft, prerelease := s.config.Draft, s.config.Prerelease
	defaults := repo.ReleaseRequest{
		TargetCommitish: s.config.TargetCommitish,
		Body:            subject,
		Draft:           &draft,
		Prerelease:      &prerelease,
	}
	req := defaults.Merge(overrides)
	logger := s.logger.With(slog.String("tagName", req.TagName), slog.String("target", req.TargetCommitish))
	logger.Debug("creating release...")
	outcome, err := s.repoService.CreateRelease(req)
	if err != nil {
		return nil, err
	}
	if outcome.IsCreated() {
		logger.Info("release created", slog.String("url", outcome.Release.HTMLURL))
	}
	return outcome, nil
}

// PublishRelease creates the release of the given version and then uploads the given files
// (sequentially, in order, stopping at the first failure).
// If the forge rejects the release payload, the outcome is returned with ErrValidationFailed
// and no file is uploaded.
func (s *Service) PublishRelease(version *repo.Version, filePaths []string) (*repo.CreationOutcome, []*repo.Asset, error) {
	if version.Semver == nil {
		s.logger.Warn("the version is not a semantic one", slog.String("version", version.String()))
	}
	overrides := repo.ReleaseRequest{
		TagName: version.TagName(),
		Name:    version.String(),
	}
	if s.config.BodyTemplateString != "" {
		subject, err := s.gitService.GetLastCommitSubject()
		if err != nil {
			return nil, nil, err
		}
		body, err := s.renderBody(bodyTemplateData{
			Version:       version.String(),
			TagName:       overrides.TagName,
			Name:          overrides.Name,
			CommitSubject: subject,
			Owner:         s.config.RepoOwner,
			Project:       s.config.RepoName,
		})
		if err != nil {
			return nil, nil, err
		}
		overrides.Body = body
	}
	outcome, err := s.CreateRelease(overrides)
	if err != nil {
		return nil, nil, err
	}
	if outcome.IsValidationFailed() {
		return outcome, nil, ErrValidationFailed
	}
	assets, err := s.repoService.UploadFiles(outcome.Release, filePaths)
	return outcome, assets, err
}

// DeleteReleases deletes the releases (and their assets) of the repository tags
// (filtered by the PruneTagRegex configuration).
func (s *Service) DeleteReleases() error {
	return s.repoService.DeleteReleases(s.config.PruneTagRegex)
}
