package main

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"sveasoft.se/web/internal/contact"
	"sveasoft.se/web/internal/handlers"
	mw "sveasoft.se/web/internal/middleware"
	"sveasoft.se/web/internal/observability"
)

// ContactSubmit validates the contact form and hands it to the notifier. The response is always
// the form fragment: 422 with field errors, 502 when delivery fails, 200 once sent.
func (a *app) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	site, err := a.site.Site(r.Context())
	if err != nil {
		a.serverError(w, r, "load site content", err)
		return
	}
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	log := observability.FromContext(r.Context())
	pkg, _ := site.Package(strings.TrimSpace(r.PostFormValue("package")))

	form := contact.Form{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Company: r.PostFormValue("company"),
		Message: r.PostFormValue("message"),
	}
	view := handlers.ContactForm{
		Lang:      lang,
		CSRFToken: sess.CSRFToken,
		Values:    form,
		Package:   pkg.ID,
		Packages:  site.Packages,
	}

	sub, err := contact.Validate(form, a.now())
	var verr *contact.ValidationError
	if errors.As(err, &verr) {
		view.Errors = verr.Problems
		a.renderStatus(w, r, http.StatusUnprocessableEntity, "frag_contact", view)
		return
	}
	if err != nil {
		a.serverError(w, r, "validate contact form", err)
		return
	}
	sub.Locale = lang
	sub.Package = pkg.ID

	if err := a.notifier.Notify(r.Context(), sub); err != nil {
		log.Error("contact notification failed", zap.String("submission_id", sub.ID), zap.Error(err))
		view.Failed = true
		a.renderStatus(w, r, http.StatusBadGateway, "frag_contact", view)
		return
	}
	log.Info("contact submission accepted", zap.String("submission_id", sub.ID), zap.String("package", sub.Package))
	mw.HXTrigger(w, "contact:sent")
	a.renderTemplate(w, r, "frag_contact", handlers.ContactForm{
		Lang:         lang,
		CSRFToken:    sess.CSRFToken,
		Packages:     site.Packages,
		Sent:         true,
		SubmissionID: sub.ID,
	})
}
