package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sveasoft.se/web/internal/handlers"
	mw "sveasoft.se/web/internal/middleware"
	"sveasoft.se/web/internal/observability"
	"sveasoft.se/web/internal/showcase"
)

// ShowcaseFrag returns the current slide. htmx polls it every cfg.Showcase.Poll so auto-advance
// shows up without client-side timers.
func (a *app) ShowcaseFrag(w http.ResponseWriter, r *http.Request) {
	a.navigateShowcase(w, r, "poll", nil)
}

// ShowcaseNext moves to the following project.
func (a *app) ShowcaseNext(w http.ResponseWriter, r *http.Request) {
	a.navigateShowcase(w, r, "next", (*showcase.Controller).Advance)
}

// ShowcasePrev moves to the previous project.
func (a *app) ShowcasePrev(w http.ResponseWriter, r *http.Request) {
	a.navigateShowcase(w, r, "prev", (*showcase.Controller).Retreat)
}

// ShowcaseJump selects the project at {index}.
func (a *app) ShowcaseJump(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid slide index")
		return
	}
	a.navigateShowcase(w, r, "jump", func(c *showcase.Controller) bool { return c.JumpTo(index) })
}

// navigateShowcase applies op to the session's controller and renders the resulting state.
// A request dropped by the transition lock still answers 200 with the unchanged slide.
func (a *app) navigateShowcase(w http.ResponseWriter, r *http.Request, name string, op func(*showcase.Controller) bool) {
	sess := mw.GetSession(r)
	ctrl, err := a.registry.Get(sess.ID)
	if err != nil {
		a.serverError(w, r, "mount showcase", err)
		return
	}
	if op != nil && !op(ctrl) {
		observability.FromContext(r.Context()).Debug("showcase navigation ignored",
			zap.String("op", name),
			zap.Bool("transitioning", ctrl.Snapshot().Transitioning()),
		)
	}
	view := handlers.BuildShowcaseView(ctrl.Snapshot(), ctrl.Items(), a.cfg.Showcase.Poll, mw.Lang(r), sess.CSRFToken)
	a.renderTemplate(w, r, "frag_showcase", view)
}
