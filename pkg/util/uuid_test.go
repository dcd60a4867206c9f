package util

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentUUID(t *testing.T) {
	a := ContentUUID([]byte("P2\n1 1\n1\n0\n"))
	b := ContentUUID([]byte("P2\n1 1\n1\n0\n"))
	c := ContentUUID([]byte("P2\n1 1\n1\n1\n"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(3), parsed.Version())
}

func TestHashUUID(t *testing.T) {
	assert.Equal(t, HashUUID([]int{1, 2}), HashUUID([]int{1, 2}))
	assert.NotEqual(t, HashUUID([]int{1, 2}), HashUUID([]int{2, 1}))
	assert.Empty(t, HashUUID(make(chan int)))
}
