package gitlocal

import (
	"errors"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"

	appgit "github.com/fabien-marty/github-push-release/internal/app/git"
)

var _ appgit.Port = &Adapter{}

type AdapterOptions struct {
	LocalGitPath string // default to "."
}

type Adapter struct {
	opts       AdapterOptions
	repository *git.Repository
}

func NewAdapter(opts AdapterOptions) *Adapter {
	if opts.LocalGitPath == "" {
		opts.LocalGitPath = "."
	}
	return &Adapter{
		opts: opts,
	}
}

// NewAdapterFromRepository creates an adapter on an already opened repository.
func NewAdapterFromRepository(repository *git.Repository) *Adapter {
	return &Adapter{
		repository: repository,
	}
}

func (r *Adapter) getRepository() (*git.Repository, error) {
	if r.repository != nil {
		return r.repository, nil
	}
	repository, err := git.PlainOpenWithOptions(r.opts.LocalGitPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, goerr.Wrap(err, "can't open the git repository", goerr.V("path", r.opts.LocalGitPath))
	}
	slog.Debug("git repository opened", slog.String("path", r.opts.LocalGitPath))
	r.repository = repository
	return repository, nil
}

func (r *Adapter) GetRemoteURL(remoteName string) (string, error) {
	repository, err := r.getRepository()
	if err != nil {
		return "", err
	}
	remote, err := repository.Remote(remoteName)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", goerr.Wrap(err, "no such remote", goerr.V("remote", remoteName))
		}
		return "", goerr.Wrap(err, "can't read the remote configuration", goerr.V("remote", remoteName))
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", goerr.New("no url configured for the remote", goerr.V("remote", remoteName))
	}
	return urls[0], nil
}

func (r *Adapter) GetLastCommitMessage() (string, error) {
	repository, err := r.getRepository()
	if err != nil {
		return "", err
	}
	head, err := repository.Head()
	if err != nil {
		return "", goerr.Wrap(err, "can't resolve HEAD")
	}
	commit, err := repository.CommitObject(head.Hash())
	if err != nil {
		return "", goerr.Wrap(err, "can't read the HEAD commit", goerr.V("hash", head.Hash().String()))
	}
	return commit.Message, nil
}
