package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	require.Equal(t, "devworks-bootcamp", Slugify("Devworks Bootcamp"))
	require.Equal(t, "modern-tech-bootcamp", Slugify("  ModErn Tech  Bootcamp!  "))
	require.Equal(t, "ui-ux-school", Slugify("UI/UX School"))
}

func TestValidCareer(t *testing.T) {
	require.True(t, ValidCareer("Web Development"))
	require.True(t, ValidCareer("Other"))
	require.False(t, ValidCareer("Astrology"))
	require.False(t, ValidCareer("web development"))
}
