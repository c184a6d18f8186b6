package repo

import (
	"log/slog"
	"os"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

type Service struct {
	adapter Port
	logger  *slog.Logger
}

func New(adapter Port) *Service {
	return &Service{
		adapter: adapter,
		logger:  slog.With("name", "repoService"),
	}
}

func (s *Service) CreateRelease(req ReleaseRequest) (*CreationOutcome, error) {
	return s.adapter.CreateRelease(req)
}

// UploadFile reads the whole file and uploads it to the given upload base url
// (the basename of the file is used as asset name).
func (s *Service) UploadFile(baseUploadURL string, filePath string) (*Asset, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, goerr.Wrap(err, "can't read the file to upload", goerr.V("path", filePath))
	}
	uploadURL := AssetUploadURL(baseUploadURL, filePath)
	s.logger.Info("uploading...", slog.String("path", filePath), slog.String("url", uploadURL), slog.Int("size", len(data)))
	return s.adapter.UploadAsset(uploadURL, data)
}

// UploadFiles uploads the given files (sequentially, in the given order) to the release.
// The first failure stops the whole operation (the remaining files are not uploaded).
func (s *Service) UploadFiles(release *Release, filePaths []string) ([]*Asset, error) {
	if len(filePaths) == 0 {
		return []*Asset{}, nil
	}
	baseUploadURL, err := release.UploadBaseURL()
	if err != nil {
		return nil, goerr.Wrap(err, "can't upload the files", goerr.V("tag", release.TagName))
	}
	assets := make([]*Asset, 0, len(filePaths))
	for _, filePath := range filePaths {
		asset, err := s.UploadFile(baseUploadURL, filePath)
		if err != nil {
			return assets, err
		}
		s.logger.Debug("asset uploaded", slog.String("name", asset.Name), slog.String("url", asset.BrowserDownloadURL))
		assets = append(assets, asset)
	}
	return assets, nil
}

// DeleteReleases deletes the release (and its assets) of every tag matching tagRegex
// (empty string => every tag). A tag without release is ignored, any other error
// stops the whole operation.
func (s *Service) DeleteReleases(tagRegex string) error {
	regex, err := regexp.Compile(tagRegex)
	if err != nil {
		return goerr.Wrap(err, "can't compile the tag regex", goerr.V("regex", tagRegex))
	}
	tags, err := s.adapter.ListTags()
	if err != nil {
		return err
	}
	s.logger.Debug("tags listed", slog.Int("count", len(tags)))
	for _, tag := range tags {
		logger := s.logger.With(slog.String("tag", tag.Name))
		if !regex.MatchString(tag.Name) {
			logger.Debug("tag doesn't match the regex => ignoring", slog.String("regex", tagRegex))
			continue
		}
		if tag.Semver == nil {
			logger.Warn("the tag is not a semantic version (not created by this tool?)")
		} else {
			logger = logger.With(slog.String("version", tag.Semver.String()))
		}
		release, err := s.adapter.GetReleaseByTag(tag.Name)
		if err != nil {
			if IsNotFound(err) {
				logger.Warn("found no release for tag", slog.String("err", err.Error()))
				continue
			}
			return err
		}
		if release.ID == nil {
			return goerr.Wrap(ErrNoReleaseID, "can't delete the release", goerr.V("tag", tag.Name))
		}
		for _, asset := range release.Assets {
			if err := s.adapter.DeleteAsset(asset); err != nil {
				return err
			}
			logger.Info("asset deleted", slog.String("asset", asset.Name))
		}
		if err := s.adapter.DeleteRelease(*release.ID); err != nil {
			return err
		}
		logger.Info("release deleted", slog.Int64("id", *release.ID))
	}
	return nil
}
