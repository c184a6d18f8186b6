package repo

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// placeholderRegex matches the first uri-template placeholder (ex: "{?name,label}")
var placeholderRegex = regexp.MustCompile(`\{[^}]*\}`)

// Asset represents a binary file attached to a release.
type Asset struct {
	ID                 int64  // asset id
	Name               string // asset (file) name
	URL                string // asset api url (used for deletion)
	BrowserDownloadURL string // public download url
}

// Release represents a forge release.
type Release struct {
	ID                *int64   // release id (nil if the forge didn't return one)
	TagName           string   // tag name (ex: "v1.2.3")
	Name              string   // display name (ex: "1.2.3")
	UploadURLTemplate string   // uri-template of the upload endpoint (ex: ".../assets{?name,label}")
	HTMLURL           string   // release web page
	Assets            []*Asset // attached assets
}

// UploadBaseURL returns the upload url template truncated at its first placeholder.
// ErrNoUploadURL is returned if the forge didn't give any upload url.
func (r *Release) UploadBaseURL() (string, error) {
	if strings.TrimSpace(r.UploadURLTemplate) == "" {
		return "", ErrNoUploadURL
	}
	return UploadBaseURL(r.UploadURLTemplate), nil
}

// Tag represents a tag listed by the forge.
type Tag struct {
	Name   string          // tag name (without modification)
	Semver *semver.Version // semver version read from tag name (nil if the tag name is not in the expected format)
}

// NewTag creates a new Tag, the "v" prefix (if any) is ignored when parsing the semantic version.
func NewTag(name string) *Tag {
	version, err := semver.StrictNewVersion(strings.TrimPrefix(name, "v"))
	if err != nil {
		version = nil
	}
	return &Tag{
		Name:   name,
		Semver: version,
	}
}

// ReleaseRequest is the payload sent to create a release.
type ReleaseRequest struct {
	TagName         string
	Name            string
	TargetCommitish string
	Body            string
	Draft           *bool // nil => not set
	Prerelease      *bool // nil => not set
}

// Merge returns a copy of r where every non-empty (or non-nil) field of overrides wins.
func (r ReleaseRequest) Merge(overrides ReleaseRequest) ReleaseRequest {
	res := r
	if overrides.TagName != "" {
		res.TagName = overrides.TagName
	}
	if overrides.Name != "" {
		res.Name = overrides.Name
	}
	if overrides.TargetCommitish != "" {
		res.TargetCommitish = overrides.TargetCommitish
	}
	if overrides.Body != "" {
		res.Body = overrides.Body
	}
	if overrides.Draft != nil {
		res.Draft = overrides.Draft
	}
	if overrides.Prerelease != nil {
		res.Prerelease = overrides.Prerelease
	}
	return res
}

// ValidationError is a {field, code} pair reported by the forge when it rejects a payload.
type ValidationError struct {
	Resource string `json:"resource"`
	Field    string `json:"field"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// CreationOutcome is the result of a release creation call:
// either Release is set (created) or ValidationErrors is (validation failed).
type CreationOutcome struct {
	Release          *Release
	ValidationErrors []ValidationError
}

// IsCreated returns true if the release was created.
func (o *CreationOutcome) IsCreated() bool {
	return o.Release != nil
}

// IsValidationFailed returns true if the forge reported a validation failure.
func (o *CreationOutcome) IsValidationFailed() bool {
	return o.Release == nil
}

// UploadBaseURL truncates an upload url template at its first placeholder
// (ex: "https://host/assets{?name,label}" => "https://host/assets").
func UploadBaseURL(uploadURLTemplate string) string {
	loc := placeholderRegex.FindStringIndex(uploadURLTemplate)
	if loc == nil {
		return uploadURLTemplate
	}
	return uploadURLTemplate[:loc[0]]
}

// AssetUploadURL returns the url to use for uploading the given file
// (the basename of the file is percent-encoded in the name query parameter).
func AssetUploadURL(baseUploadURL string, filePath string) string {
	query := url.Values{}
	query.Set("name", filepath.Base(filePath))
	return baseUploadURL + "?" + query.Encode()
}
