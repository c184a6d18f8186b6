package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVersion(t *testing.T) {
	v, err := NewVersion("2.3\n", "7")
	assert.Nil(t, err)
	assert.Equal(t, "2.3.7", v.String())
	assert.Equal(t, "v2.3.7", v.TagName())
	assert.NotNil(t, v.Semver)
	assert.Equal(t, uint64(7), v.Semver.Patch())
}

func TestNewVersionNonSemantic(t *testing.T) {
	v, err := NewVersion("2.3.1", "7")
	assert.Nil(t, err)
	assert.Equal(t, "v2.3.1.7", v.TagName())
	assert.Nil(t, v.Semver)
}

func TestNewVersionEmpty(t *testing.T) {
	_, err := NewVersion("2.3", "")
	assert.NotNil(t, err)
	_, err = NewVersion("\n", "7")
	assert.NotNil(t, err)
}
