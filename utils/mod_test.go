package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	items := []string{"spark", "dive", "spark"}

	require.Equal(t, 0, FindIndex(items, "spark"), "Should return the first match")
	require.Equal(t, 1, FindIndex(items, "dive"))
	require.Equal(t, -1, FindIndex(items, "surf"))
	require.Equal(t, -1, FindIndex(nil, "surf"))
	require.True(t, Contains(items, "dive"))
	require.False(t, Contains(items, "surf"))
}
