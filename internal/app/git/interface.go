package git

// Port is the interface that must be implemented by git adapters.
type Port interface {
	// GetRemoteURL returns the (first) url configured for the given remote (ex: "origin").
	GetRemoteURL(remoteName string) (string, error)
	// GetLastCommitMessage returns the full message of the commit pointed by HEAD.
	GetLastCommitMessage() (string, error)
}
