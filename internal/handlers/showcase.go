package handlers

import (
	"time"

	"sveasoft.se/web/internal/showcase"
)

// Slide is one rendered showcase item.
type Slide struct {
	Index    int
	Position int // 1-based, for "n of m" labels
	Item     showcase.Item
	Active   bool
}

// ShowcaseView is the model behind the showcase fragment.
type ShowcaseView struct {
	Lang          string
	CSRFToken     string
	Slides        []Slide
	Active        Slide
	Count         int
	Direction     string
	Animation     string
	Transitioning bool
	PollEvery     string
}

// Animation classes applied to the entering slide.
const (
	AnimationForward  = "slide-in-right"
	AnimationBackward = "slide-in-left"
)

// AnimationClass maps a navigation direction to its CSS class.
func AnimationClass(d showcase.Direction) string {
	if d == showcase.Backward {
		return AnimationBackward
	}
	return AnimationForward
}

// BuildShowcaseView combines a controller snapshot with its items.
func BuildShowcaseView(state showcase.State, items []showcase.Item, poll time.Duration, lang, csrf string) ShowcaseView {
	if poll <= 0 {
		poll = time.Second
	}
	v := ShowcaseView{
		Lang:          lang,
		CSRFToken:     csrf,
		Count:         len(items),
		Direction:     state.Direction.String(),
		Animation:     AnimationClass(state.Direction),
		Transitioning: state.Transitioning(),
		PollEvery:     poll.String(),
		Slides:        make([]Slide, 0, len(items)),
	}
	for i, it := range items {
		s := Slide{Index: i, Position: i + 1, Item: it, Active: i == state.ActiveIndex}
		if s.Active {
			v.Active = s
		}
		v.Slides = append(v.Slides, s)
	}
	return v
}
