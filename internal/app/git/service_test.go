package git

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type gitDummyAdapter struct {
	remotes map[string]string
	message string
}

func (d *gitDummyAdapter) GetRemoteURL(remoteName string) (string, error) {
	url, ok := d.remotes[remoteName]
	if !ok {
		return "", errors.New("remote not found")
	}
	return url, nil
}

func (d *gitDummyAdapter) GetLastCommitMessage() (string, error) {
	return d.message, nil
}

func TestGuessRemote(t *testing.T) {
	s := New(&gitDummyAdapter{remotes: map[string]string{"origin": "git@github.com:acme/widgets.git"}})
	remote, err := s.GuessRemote("origin", "git", "github.com")
	assert.Nil(t, err)
	assert.Equal(t, "acme", remote.Owner)
	assert.Equal(t, "widgets", remote.Project)
	_, err = s.GuessRemote("upstream", "git", "github.com")
	assert.NotNil(t, err)
}

func TestGuessRemoteUnexpectedHost(t *testing.T) {
	s := New(&gitDummyAdapter{remotes: map[string]string{"origin": "git@example.com:acme/widgets.git"}})
	_, err := s.GuessRemote("origin", "git", "github.com")
	var confErr *ConfigurationError
	assert.True(t, errors.As(err, &confErr))
}

func TestGetLastCommitSubject(t *testing.T) {
	s := New(&gitDummyAdapter{message: "add the uploader\n\nsee #12\n"})
	subject, err := s.GetLastCommitSubject()
	assert.Nil(t, err)
	assert.Equal(t, "add the uploader", subject)
}
