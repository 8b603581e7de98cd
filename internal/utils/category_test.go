package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategorySegments(t *testing.T) {
	require.Equal(t, []string{"Food", "Dairy"}, CategorySegments("Food/Dairy"))
	require.Equal(t, []string{"Food"}, CategorySegments("/Food/"))
	require.Empty(t, CategorySegments(""))
}

func TestNormalizeCategory(t *testing.T) {
	require.Equal(t, "Food/Dairy", NormalizeCategory("Food / Dairy"))
	require.Equal(t, "Food", NormalizeCategory("/Food"))
}
