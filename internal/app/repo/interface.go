package repo

// Port is the interface that must be implemented by repo adapters.
// Every call is blocking, a response with a status code >= 400 is returned as an *APIError.
type Port interface {

	// CreateRelease creates a release. A validation failure reported by the forge
	// in a successful response is returned as an outcome, not as an error.
	CreateRelease(req ReleaseRequest) (*CreationOutcome, error)

	// UploadAsset posts data to the given (complete) upload url.
	UploadAsset(uploadURL string, data []byte) (*Asset, error)

	// ListTags returns the tags of the repository (in the order returned by the forge).
	ListTags() ([]*Tag, error)

	// GetReleaseByTag returns the release associated with the given tag name.
	GetReleaseByTag(tagName string) (*Release, error)

	// DeleteAsset deletes the asset (by its own url).
	DeleteAsset(asset *Asset) error

	// DeleteRelease deletes the release with the given id.
	DeleteRelease(id int64) error
}
