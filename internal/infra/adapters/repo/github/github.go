package repogithub

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/fabien-marty/github-push-release/internal/app/repo"
	gh "github.com/google/go-github/v70/github"
)

var _ repo.Port = &Adapter{}

// message of a (successful) response describing a payload rejected by the forge
const validationFailedMessage = "Validation Failed"

type AdapterOptions struct {
	Token      string
	BaseURL    string       // api root (default: https://api.github.com/)
	HTTPClient *http.Client // default: http.DefaultClient
}

type Adapter struct {
	opts   AdapterOptions
	client *Client
	owner  string
	repo   string
}

// NewAdapter creates a GitHub adapter for the owner/repo repository
// (the owner is also used as user-agent).
func NewAdapter(owner string, repo string, opts AdapterOptions) (*Adapter, error) {
	client, err := NewClient(ClientOptions{
		Token:      opts.Token,
		UserAgent:  owner,
		BaseURL:    opts.BaseURL,
		HTTPClient: opts.HTTPClient,
	})
	if err != nil {
		return nil, err
	}
	return &Adapter{
		opts:   opts,
		client: client,
		owner:  owner,
		repo:   repo,
	}, nil
}

func (r *Adapter) releasesURL() string {
	return fmt.Sprintf("repos/%s/%s/releases", url.PathEscape(r.owner), url.PathEscape(r.repo))
}

func createAssetFromGhAsset(asset *gh.ReleaseAsset) *repo.Asset {
	return &repo.Asset{
		ID:                 asset.GetID(),
		Name:               asset.GetName(),
		URL:                asset.GetURL(),
		BrowserDownloadURL: asset.GetBrowserDownloadURL(),
	}
}

func createReleaseFromGhRelease(release *gh.RepositoryRelease) *repo.Release {
	assets := []*repo.Asset{}
	for _, asset := range release.Assets {
		if asset == nil {
			continue
		}
		assets = append(assets, createAssetFromGhAsset(asset))
	}
	return &repo.Release{
		ID:                release.ID,
		TagName:           release.GetTagName(),
		Name:              release.GetName(),
		UploadURLTemplate: release.GetUploadURL(),
		HTMLURL:           release.GetHTMLURL(),
		Assets:            assets,
	}
}

func (r *Adapter) CreateRelease(req repo.ReleaseRequest) (*repo.CreationOutcome, error) {
	payload := &gh.RepositoryRelease{
		TagName:         gh.Ptr(req.TagName),
		Name:            gh.Ptr(req.Name),
		TargetCommitish: gh.Ptr(req.TargetCommitish),
		Body:            gh.Ptr(req.Body),
		Draft:           req.Draft,
		Prerelease:      req.Prerelease,
	}
	resp, err := r.client.Request(context.Background(), http.MethodPost, r.releasesURL(), JSONBody(payload))
	if err != nil {
		return nil, err
	}
	var failure gh.ErrorResponse
	if err := resp.Decode(&failure); err != nil {
		return nil, err
	}
	if failure.Message == validationFailedMessage {
		validationErrors := []repo.ValidationError{}
		for _, e := range failure.Errors {
			validationErrors = append(validationErrors, repo.ValidationError{
				Resource: e.Resource,
				Field:    e.Field,
				Code:     e.Code,
				Message:  e.Message,
			})
		}
		slog.Debug("validation failed", slog.Int("count", len(validationErrors)))
		return &repo.CreationOutcome{ValidationErrors: validationErrors}, nil
	}
	var release gh.RepositoryRelease
	if err := resp.Decode(&release); err != nil {
		return nil, err
	}
	return &repo.CreationOutcome{Release: createReleaseFromGhRelease(&release)}, nil
}

func (r *Adapter) UploadAsset(uploadURL string, data []byte) (*repo.Asset, error) {
	resp, err := r.client.Request(context.Background(), http.MethodPost, uploadURL, BinaryBody(data))
	if err != nil {
		return nil, err
	}
	var asset gh.ReleaseAsset
	if err := resp.Decode(&asset); err != nil {
		return nil, err
	}
	return createAssetFromGhAsset(&asset), nil
}

func (r *Adapter) ListTags() ([]*repo.Tag, error) {
	tagsURL := fmt.Sprintf("repos/%s/%s/tags?per_page=100", url.PathEscape(r.owner), url.PathEscape(r.repo))
	resp, err := r.client.Request(context.Background(), http.MethodGet, tagsURL, nil)
	if err != nil {
		return nil, err
	}
	var tags []*gh.RepositoryTag
	if err := resp.Decode(&tags); err != nil {
		return nil, err
	}
	res := []*repo.Tag{}
	for _, tag := range tags {
		if tag == nil || tag.Name == nil {
			continue
		}
		res = append(res, repo.NewTag(*tag.Name))
	}
	return res, nil
}

func (r *Adapter) GetReleaseByTag(tagName string) (*repo.Release, error) {
	resp, err := r.client.Request(context.Background(), http.MethodGet, r.releasesURL()+"/tags/"+url.PathEscape(tagName), nil)
	if err != nil {
		return nil, err
	}
	var release gh.RepositoryRelease
	if err := resp.Decode(&release); err != nil {
		return nil, err
	}
	return createReleaseFromGhRelease(&release), nil
}

func (r *Adapter) DeleteAsset(asset *repo.Asset) error {
	_, err := r.client.Request(context.Background(), http.MethodDelete, asset.URL, nil)
	return err
}

func (r *Adapter) DeleteRelease(id int64) error {
	_, err := r.client.Request(context.Background(), http.MethodDelete, fmt.Sprintf("%s/%d", r.releasesURL(), id), nil)
	return err
}
