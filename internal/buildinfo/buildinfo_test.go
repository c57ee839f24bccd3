package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	v, c := Version, Commit
	t.Cleanup(func() { Version, Commit = v, c })

	Version, Commit = "dev", "unknown"
	assert.Equal(t, "dev", Short())
	assert.Equal(t, "portfolio/dev", UserAgent())

	Commit = "0123456789abcdef"
	assert.Equal(t, "0123456789ab", Short())

	Version = "v1.0.0"
	assert.Equal(t, "v1.0.0", Short())
	assert.Contains(t, String(), "v1.0.0")
	assert.Contains(t, String(), "0123456789abcdef")
}
