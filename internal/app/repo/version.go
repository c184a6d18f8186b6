package repo

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/m-mizutani/goerr/v2"
)

const tagPrefix = "v"

// Version is the version of the release to publish: <base>.<patchLevel>
type Version struct {
	Base       string          // base version read from the version file (ex: "2.3")
	PatchLevel string          // patch level provided by the environment (ex: "7")
	Semver     *semver.Version // nil if the full version is not a semantic version
}

// NewVersion builds a Version from a base version (surrounding whitespaces are removed)
// and a patch level. Both must be non-empty.
func NewVersion(base string, patchLevel string) (*Version, error) {
	base = strings.TrimSpace(base)
	patchLevel = strings.TrimSpace(patchLevel)
	if base == "" {
		return nil, goerr.New("empty base version")
	}
	if patchLevel == "" {
		return nil, goerr.New("empty patch level")
	}
	v := &Version{
		Base:       base,
		PatchLevel: patchLevel,
	}
	semVersion, err := semver.StrictNewVersion(v.String())
	if err == nil {
		v.Semver = semVersion
	}
	return v, nil
}

// String returns the display name of the version (ex: "2.3.7").
func (v *Version) String() string {
	return v.Base + "." + v.PatchLevel
}

// TagName returns the tag name of the version (ex: "v2.3.7").
func (v *Version) TagName() string {
	return tagPrefix + v.String()
}
