package partid

import (
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/assert"
)

func TestNewAnonymous(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := NewAnonymous()
		assert.True(t, IsAnonymous(id))
		assert.Equal(t, strings.ToLower(id), id, "anonymous ids are lowercase")

		_, dup := seen[id]
		assert.False(t, dup, "anonymous ids must not collide")
		seen[id] = struct{}{}
	}
}

func TestIsAnonymous(t *testing.T) {
	assert.True(t, IsAnonymous("anon-01h2xz"))
	assert.False(t, IsAnonymous("prolific-"+uniuri.NewLen(24)))
	assert.False(t, IsAnonymous(uniuri.NewLen(32)))
	assert.False(t, IsAnonymous(""))
}
