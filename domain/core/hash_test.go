package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetHashBasics(t *testing.T) {
	var empty DatasetHash
	assert.True(t, empty.IsEmpty())

	h := NewDatasetHash([]byte("Month,Lince\n2015-01,1500\n"))
	assert.False(t, h.IsEmpty())
	assert.Len(t, h.String(), 64)
	assert.Equal(t, h.String()[:12], h.Short())
	assert.Equal(t, h, NewDatasetHash([]byte("Month,Lince\n2015-01,1500\n")))
}
