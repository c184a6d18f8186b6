package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	defaults := ReleaseRequest{TargetCommitish: "master", Body: "X"}
	req := defaults.Merge(ReleaseRequest{TagName: "v1.0.0", Name: "1.0.0"})
	assert.Equal(t, ReleaseRequest{TagName: "v1.0.0", Name: "1.0.0", TargetCommitish: "master", Body: "X"}, req)
	yes := true
	req = defaults.Merge(ReleaseRequest{Body: "Y", Draft: &yes})
	assert.Equal(t, "master", req.TargetCommitish)
	assert.Equal(t, "Y", req.Body)
	assert.True(t, *req.Draft)
	assert.Nil(t, req.Prerelease)
	assert.Equal(t, "X", defaults.Body)
}

func TestMergeBoolOverrideWins(t *testing.T) {
	yes, no := true, false
	defaults := ReleaseRequest{Draft: &yes, Prerelease: &yes}
	req := defaults.Merge(ReleaseRequest{Draft: &no})
	assert.False(t, *req.Draft)
	assert.True(t, *req.Prerelease)
	req = defaults.Merge(ReleaseRequest{})
	assert.True(t, *req.Draft)
}

func TestUploadBaseURL(t *testing.T) {
	assert.Equal(t, "https://host/assets", UploadBaseURL("https://host/assets{?name,label}"))
	assert.Equal(t, "https://host/assets", UploadBaseURL("https://host/assets"))
	assert.Equal(t, "https://host/a", UploadBaseURL("https://host/a{?x}/b{?y}"))
	release := &Release{UploadURLTemplate: "https://uploads.github.com/repos/acme/widgets/releases/1/assets{?name,label}"}
	baseURL, err := release.UploadBaseURL()
	assert.Nil(t, err)
	assert.Equal(t, "https://uploads.github.com/repos/acme/widgets/releases/1/assets", baseURL)
	_, err = (&Release{}).UploadBaseURL()
	assert.ErrorIs(t, err, ErrNoUploadURL)
}

func TestAssetUploadURL(t *testing.T) {
	assert.Equal(t, "https://host/assets?name=report.txt", AssetUploadURL("https://host/assets", "report.txt"))
	assert.Equal(t, "https://host/assets?name=a.bin", AssetUploadURL("https://host/assets", "/tmp/build/a.bin"))
	assert.Equal(t, "https://host/assets?name=my+report+%231.txt", AssetUploadURL("https://host/assets", "dist/my report #1.txt"))
}

func TestNewTag(t *testing.T) {
	tag := NewTag("v1.2.3")
	assert.Equal(t, "v1.2.3", tag.Name)
	assert.NotNil(t, tag.Semver)
	assert.Equal(t, uint64(2), tag.Semver.Minor())
	tag = NewTag("nightly")
	assert.Equal(t, "nightly", tag.Name)
	assert.Nil(t, tag.Semver)
}

func TestCreationOutcome(t *testing.T) {
	created := &CreationOutcome{Release: &Release{TagName: "v1.0.0"}}
	assert.True(t, created.IsCreated())
	assert.False(t, created.IsValidationFailed())
	failed := &CreationOutcome{ValidationErrors: []ValidationError{{Field: "tag_name", Code: "already_exists"}}}
	assert.False(t, failed.IsCreated())
	assert.True(t, failed.IsValidationFailed())
}
