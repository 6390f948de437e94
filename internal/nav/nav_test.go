package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildOnHomeUsesFragments(t *testing.T) {
	items := Build("/", "pricing")
	require.Len(t, items, len(Main))
	require.Equal(t, "#services", items[0].Href)
	require.True(t, items[2].Active)
	require.False(t, items[0].Active)
}

func TestBuildElsewhereLinksHome(t *testing.T) {
	items := Build("/legal/privacy", "")
	require.Equal(t, "/#contact", items[len(items)-1].Href)
}

func TestBreadcrumbs(t *testing.T) {
	crumbs := Breadcrumbs("/legal/privacy-policy")
	require.Len(t, crumbs, 3)
	require.Equal(t, "nav.home", crumbs[0].LabelKey)
	require.Equal(t, "nav.legal", crumbs[1].LabelKey)
	require.Equal(t, "Privacy policy", crumbs[2].Label)
	require.True(t, crumbs[2].Active)

	require.Len(t, Breadcrumbs("/"), 1)
	require.True(t, IsSection("location"))
	require.False(t, IsSection("about"))
}
