package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.01, Round2(10.005))
	assert.Equal(t, 10.0, Round2(10.004))
	assert.Equal(t, 13.5, Round2(13.50))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 100.01, Round2(100.005))
}

func TestLineAmount(t *testing.T) {
	assert.Equal(t, 240.0, LineAmount(2, 120))
	assert.Equal(t, 0.0, LineAmount(0, 120))
	assert.InDelta(t, 100.005, LineAmount(3, 33.335), 1e-9)
}
