package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sveasoft.se/web/internal/cms"
	"sveasoft.se/web/internal/middleware"
	"sveasoft.se/web/internal/showcase"
)

func TestBuildShowcaseView(t *testing.T) {
	items := cms.DefaultSite().ShowcaseItems()
	state := showcase.State{ActiveIndex: 2, Direction: showcase.Backward, TransitionLock: true}

	v := BuildShowcaseView(state, items, 0, "sv", "tok")
	require.Equal(t, 4, v.Count)
	require.Equal(t, 2, v.Active.Index)
	require.Equal(t, 3, v.Active.Position)
	require.Equal(t, items[2].ID, v.Active.Item.ID)
	require.Equal(t, AnimationBackward, v.Animation)
	require.Equal(t, "backward", v.Direction)
	require.True(t, v.Transitioning)
	require.Equal(t, "1s", v.PollEvery)

	active := 0
	for _, s := range v.Slides {
		if s.Active {
			active++
		}
	}
	require.Equal(t, 1, active)
}

func TestAnimationClass(t *testing.T) {
	require.Equal(t, "slide-in-right", AnimationClass(showcase.Forward))
	require.Equal(t, "slide-in-left", AnimationClass(showcase.Backward))
}

func TestBuildCartView(t *testing.T) {
	site := cms.DefaultSite()
	cart := []middleware.CartLine{
		{PackageID: "starter", Quantity: 2},
		{PackageID: "retired", Quantity: 1},
		{PackageID: "enterprise", Quantity: 1},
	}
	v := BuildCartView(site, cart, "en", "")
	require.Equal(t, 3, v.Count)
	require.Len(t, v.Lines, 2)
	require.Equal(t, "$998", v.Lines[0].Subtotal)
	require.Equal(t, 10, v.Lines[0].Hours)
	require.Equal(t, []string{"$2,697"}, v.Totals)
}

func TestPackageCards(t *testing.T) {
	site := cms.DefaultSite()
	cards := PackageCards(site.Packages, []middleware.CartLine{{PackageID: "professional", Quantity: 1}}, "sv")
	require.Len(t, cards, 3)
	require.Equal(t, "$499", cards[0].PriceLabel)
	require.Equal(t, "$1 699", cards[2].PriceLabel)
	require.Equal(t, 1, cards[1].InCart)
	require.True(t, cards[1].Popular)
}

func TestServiceCardsRenderMarkdown(t *testing.T) {
	cards := ServiceCards(cms.DefaultSite().Services)
	require.Len(t, cards, 6)
	require.Contains(t, string(cards[1].Body), "<strong>unified</strong>")
}

func TestContactFormHasError(t *testing.T) {
	f := ContactForm{Errors: map[string]string{"email": "invalid"}}
	require.True(t, f.HasError("email"))
	require.False(t, f.HasError("name"))
}

func TestLoadAnalytics(t *testing.T) {
	env := map[string]string{"WEB_GA_MEASUREMENT_ID": "G-1"}
	a := LoadAnalytics(func(k string) string { return env[k] })
	require.True(t, a.Enabled())
	require.False(t, a.Debug)
	require.False(t, LoadAnalytics(func(string) string { return "" }).Enabled())
}
