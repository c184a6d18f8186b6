package app

// Config is the configuration of the application
type Config struct {
	RepoOwner          string // repository owner (organization)
	RepoName           string // repository name (without owner/organization part)
	TargetCommitish    string // default target of the created release (ex: "master")
	Draft              bool   // if true, the release is created in draft mode
	Prerelease         bool   // if true, the release is flagged as a prerelease
	BodyTemplateString string // if set, golang template overriding the default release body (last commit subject)
	PruneTagRegex      string // regex to select the tags whose release is deleted by DeleteReleases (empty => all tags)
}
