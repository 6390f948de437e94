package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"sveasoft.se/web/internal/cms"
	"sveasoft.se/web/internal/handlers"
	mw "sveasoft.se/web/internal/middleware"
)

// CartFrag renders the session cart panel.
func (a *app) CartFrag(w http.ResponseWriter, r *http.Request) {
	site, err := a.site.Site(r.Context())
	if err != nil {
		a.serverError(w, r, "load site content", err)
		return
	}
	a.renderTemplate(w, r, "frag_cart", a.cartView(r, site, ""))
}

// CartAdd puts one unit of {packageID} into the cart.
func (a *app) CartAdd(w http.ResponseWriter, r *http.Request) {
	site, pkg, ok := a.cartPackage(w, r)
	if !ok {
		return
	}
	mw.GetSession(r).AddToCart(pkg.ID)
	mw.HXTrigger(w, "cart:updated")
	a.renderTemplate(w, r, "frag_cart", a.cartView(r, site, pkg.Name))
}

// CartRemove drops {packageID} from the cart. Removing an absent line is not an error.
func (a *app) CartRemove(w http.ResponseWriter, r *http.Request) {
	site, pkg, ok := a.cartPackage(w, r)
	if !ok {
		return
	}
	if mw.GetSession(r).RemoveFromCart(pkg.ID) {
		mw.HXTrigger(w, "cart:updated")
	}
	a.renderTemplate(w, r, "frag_cart", a.cartView(r, site, ""))
}

func (a *app) cartPackage(w http.ResponseWriter, r *http.Request) (cms.Site, cms.Package, bool) {
	site, err := a.site.Site(r.Context())
	if err != nil {
		a.serverError(w, r, "load site content", err)
		return cms.Site{}, cms.Package{}, false
	}
	pkg, ok := site.Package(strings.TrimSpace(chi.URLParam(r, "packageID")))
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "unknown package")
		return cms.Site{}, cms.Package{}, false
	}
	return site, pkg, true
}

func (a *app) cartView(r *http.Request, site cms.Site, added string) handlers.CartView {
	sess := mw.GetSession(r)
	v := handlers.BuildCartView(site, sess.Cart, mw.Lang(r), sess.CSRFToken)
	v.Added = added
	v.Badge = true
	return v
}
