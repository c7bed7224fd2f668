package resettoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	plain, hash, err := New()
	require.NoError(t, err)

	assert.Len(t, plain, 64)
	assert.Len(t, hash, 64)
	assert.NotEqual(t, plain, hash)
	assert.Equal(t, Hash(plain), hash)
}

func TestNew_Unique(t *testing.T) {
	first, _, err := New()
	require.NoError(t, err)

	second, _, err := New()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHash_Deterministic(t *testing.T) {
	assert.Equal(t, Hash("abc"), Hash("abc"))
	assert.NotEqual(t, Hash("abc"), Hash("abd"))
}
