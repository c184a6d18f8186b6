package git

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
)

type Service struct {
	adapter Port
	logger  *slog.Logger
}

func New(adapter Port) *Service {
	return &Service{
		adapter: adapter,
		logger:  slog.With("name", "gitService"),
	}
}

// GuessRemote reads the url of the given remote and checks that it points to the expected user and host.
// A *ConfigurationError is returned if the url is not in the expected form.
func (s *Service) GuessRemote(remoteName string, expectedUser string, expectedHost string) (*Remote, error) {
	url, err := s.adapter.GetRemoteURL(remoteName)
	if err != nil {
		return nil, goerr.Wrap(err, "can't read the remote url", goerr.V("remote", remoteName))
	}
	remote, err := ParseRemoteURL(url)
	if err != nil {
		return nil, err
	}
	if err := remote.Check(expectedUser, expectedHost); err != nil {
		return nil, err
	}
	s.logger.Debug("remote found", slog.String("owner", remote.Owner), slog.String("project", remote.Project))
	return remote, nil
}

// GetLastCommitSubject returns the first line of the HEAD commit message.
func (s *Service) GetLastCommitSubject() (string, error) {
	message, err := s.adapter.GetLastCommitMessage()
	if err != nil {
		return "", goerr.Wrap(err, "can't read the last commit message")
	}
	return FirstLine(message), nil
}
