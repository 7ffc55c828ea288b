package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIndices(t *testing.T) {
	indices, err := resolveIndices("DE_DAX, US_DOW")
	require.NoError(t, err)
	assert.Equal(t, []string{"DE_DAX", "US_DOW"}, indices)
}

func TestResolveIndicesUnknown(t *testing.T) {
	_, err := resolveIndices("DE_DAX,FANTASY_500")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FANTASY_500")
}
