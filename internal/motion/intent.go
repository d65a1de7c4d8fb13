// Package motion describes page animations as declarative intents. Components
// say what should happen (enter, exit, hover, expand) and an Engine decides
// how: the Recorder forwards intents to the browser, Nop drops them.
package motion

import (
	"encoding/json"
	"time"
)

// Ease names an easing curve understood by the client animation engine.
type Ease string

const (
	EaseNone    Ease = "none"
	Power2Out   Ease = "power2.out"
	Power2InOut Ease = "power2.inOut"
	Power3Out   Ease = "power3.out"
	Power3InOut Ease = "power3.inOut"
	Power4InOut Ease = "power4.inOut"
	BackOut     Ease = "back.out(1.7)"
	SineInOut   Ease = "sine.inOut"
)

// Kind is the primitive an intent maps to.
type Kind string

const (
	KindSet      Kind = "set"
	KindTo       Kind = "to"
	KindFromTo   Kind = "fromTo"
	KindScrollTo Kind = "scrollTo"
	KindKill     Kind = "kill"
)

// Name labels what an intent means for the page.
type Name string

const (
	Enter    Name = "enter"
	Exit     Name = "exit"
	Hover    Name = "hover"
	Unhover  Name = "unhover"
	Expand   Name = "expand"
	Reveal   Name = "reveal"
	Pulse    Name = "pulse"
	Position Name = "position"
	Overlay  Name = "overlay"
	Navigate Name = "navigate"
	Register Name = "register"
	Hide     Name = "hide"
)

// Window is the target used for page scroll tweens.
const Window = "window"

// Props holds animated CSS properties keyed by their engine name.
type Props map[string]any

// Tween configures timing for an animation.
type Tween struct {
	Duration time.Duration
	Ease     Ease
	Delay    time.Duration
	Repeat   int
	Yoyo     bool
}

type tweenJSON struct {
	Duration float64 `json:"duration"`
	Ease     Ease    `json:"ease,omitempty"`
	Delay    float64 `json:"delay,omitempty"`
	Repeat   int     `json:"repeat,omitempty"`
	Yoyo     bool    `json:"yoyo,omitempty"`
}

// MarshalJSON writes durations in seconds, as the client engine expects.
func (t Tween) MarshalJSON() ([]byte, error) {
	return json.Marshal(tweenJSON{
		Duration: t.Duration.Seconds(),
		Ease:     t.Ease,
		Delay:    t.Delay.Seconds(),
		Repeat:   t.Repeat,
		Yoyo:     t.Yoyo,
	})
}

// Trigger ties an animation to a scroll position.
type Trigger struct {
	Start         string `json:"start"`
	End           string `json:"end,omitempty"`
	ToggleActions string `json:"toggleActions"`
	ID            string `json:"id,omitempty"`
}

// Intent is one animation instruction.
type Intent struct {
	Kind    Kind     `json:"kind"`
	Name    Name     `json:"name,omitempty"`
	Target  string   `json:"target"`
	From    Props    `json:"from,omitempty"`
	To      Props    `json:"to,omitempty"`
	Tween   *Tween   `json:"tween,omitempty"`
	Trigger *Trigger `json:"scrollTrigger,omitempty"`
	// At is the start offset within a timeline, in seconds.
	At float64 `json:"at,omitempty"`
	// Y is the scroll destination for KindScrollTo.
	Y float64 `json:"y,omitempty"`
}

// Handle controls a running animation.
type Handle interface {
	Kill()
}

type nopHandle struct{}

func (nopHandle) Kill() {}
