package git

import (
	"fmt"
	"regexp"
	"strings"
)

// remoteRegex matches ssh-style remote urls: <user>@<host>:<owner>/<project>
var remoteRegex = regexp.MustCompile(`^([^@/]+)@([^:/]+):([^/]+)/([^/]+)$`)

// Remote represents the coordinates of the GitHub repository guessed from the local git configuration.
type Remote struct {
	User    string // ssh user (ex: "git")
	Host    string // ssh host (ex: "github.com")
	Owner   string // repository owner (organization)
	Project string // repository name (without owner/organization part and without ".git" suffix)
	RawURL  string // remote url as configured
}

// ConfigurationError is returned when the local git configuration doesn't point
// to the expected forge.
type ConfigurationError struct {
	RemoteURL string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("bad remote url %q: %s", e.RemoteURL, e.Reason)
}

// ParseRemoteURL parses a remote url of the form <user>@<host>:<owner>/<project>[.git].
// The ".git" suffix is removed from the project name (if present).
func ParseRemoteURL(remoteURL string) (*Remote, error) {
	url := strings.TrimSpace(remoteURL)
	matches := remoteRegex.FindStringSubmatch(url)
	if matches == nil {
		return nil, &ConfigurationError{RemoteURL: remoteURL, Reason: "not in the <user>@<host>:<owner>/<project> form"}
	}
	project := strings.TrimSuffix(matches[4], ".git")
	if project == "" {
		return nil, &ConfigurationError{RemoteURL: remoteURL, Reason: "empty project name"}
	}
	return &Remote{
		User:    matches[1],
		Host:    matches[2],
		Owner:   matches[3],
		Project: project,
		RawURL:  url,
	}, nil
}

// Check returns a ConfigurationError if the remote doesn't use the expected user and host.
func (r *Remote) Check(expectedUser string, expectedHost string) error {
	url := r.RawURL
	if url == "" {
		url = r.String()
	}
	if r.User != expectedUser {
		return &ConfigurationError{RemoteURL: url, Reason: fmt.Sprintf("was expecting the %q user, got %q", expectedUser, r.User)}
	}
	if r.Host != expectedHost {
		return &ConfigurationError{RemoteURL: url, Reason: fmt.Sprintf("was expecting the %q host, got %q", expectedHost, r.Host)}
	}
	return nil
}

func (r *Remote) String() string {
	return fmt.Sprintf("%s@%s:%s/%s", r.User, r.Host, r.Owner, r.Project)
}

// FirstLine returns the first line of a (commit) message.
func FirstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimRight(line, "\r")
}
