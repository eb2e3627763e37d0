package randutil

import (
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for range 8 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestSeed(t *testing.T) {
	clock := quartz.NewMock(t)

	explicit := int64(7)
	assert.Equal(t, int64(7), Seed(&explicit, clock))
	assert.Equal(t, clock.Now().UnixNano(), Seed(nil, clock))
}
