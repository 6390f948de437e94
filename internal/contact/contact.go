// Package contact validates and dispatches messages submitted through the site's contact form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/mail"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"
)

const (
	maxNameLen    = 120
	maxEmailLen   = 254
	maxCompanyLen = 160
	maxMessageLen = 4000
	minMessageLen = 10
)

// ErrNotifierUnavailable is returned when a submission could not be delivered downstream.
var ErrNotifierUnavailable = errors.New("contact: notifier unavailable")

// Form is the raw form input.
type Form struct {
	Name    string
	Email   string
	Company string
	Message string
}

// Submission is a validated, sanitized contact request.
type Submission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company,omitempty"`
	Message     string    `json:"message"`
	Locale      string    `json:"locale,omitempty"`
	Package     string    `json:"package,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ValidationError lists per-field problems. Keys are form field names.
type ValidationError struct {
	Problems map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact: invalid fields: %s", strings.Join(e.Fields(), ", "))
}

// Fields returns the offending field names in stable order.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Problems))
	for k := range e.Problems {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var policy = bluemonday.StrictPolicy()

// Validate sanitizes the form and returns a Submission stamped with id and time.
func Validate(form Form, now time.Time) (Submission, error) {
	problems := map[string]string{}

	name := clean(form.Name)
	switch {
	case name == "":
		problems["name"] = "required"
	case utf8.RuneCountInString(name) > maxNameLen:
		problems["name"] = "too_long"
	}

	email := strings.TrimSpace(form.Email)
	switch {
	case email == "":
		problems["email"] = "required"
	case len(email) > maxEmailLen:
		problems["email"] = "too_long"
	default:
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			problems["email"] = "invalid"
		}
	}

	company := clean(form.Company)
	if utf8.RuneCountInString(company) > maxCompanyLen {
		problems["company"] = "too_long"
	}

	message := clean(form.Message)
	switch n := utf8.RuneCountInString(message); {
	case n == 0:
		problems["message"] = "required"
	case n < minMessageLen:
		problems["message"] = "too_short"
	case n > maxMessageLen:
		problems["message"] = "too_long"
	}

	if len(problems) > 0 {
		return Submission{}, &ValidationError{Problems: problems}
	}
	return Submission{
		ID:          ulid.Make().String(),
		Name:        name,
		Email:       email,
		Company:     company,
		Message:     message,
		SubmittedAt: now.UTC(),
	}, nil
}

func clean(s string) string {
	// Strip markup, then undo entity escaping so templates escape exactly once.
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}

// Notifier delivers accepted submissions.
type Notifier interface {
	Notify(ctx context.Context, sub Submission) error
}
