// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/tween.go
// Summary: Frame-stepped integer tween with pluggable easing.
// Usage: Drives smooth page scrolls one frame at a time.

package effects

import (
	"math"
	"time"
)

// EasingFunc maps linear progress [0,1] to eased progress [0,1].
type EasingFunc func(progress float64) float64

var (
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep accelerates at the start and decelerates at the end.
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}

	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2.0 * t * t
		}
		return -1.0 + (4.0-2.0*t)*t
	}
)

// EasingByName resolves a configured easing name. Unknown names fall back to
// smoothstep.
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "out-cubic":
		return EaseOutCubic
	case "in-out-quad":
		return EaseInOutQuad
	default:
		return EaseSmoothstep
	}
}

// Tween interpolates an integer from From to To over a fixed number of
// frames.
type Tween struct {
	From, To int
	Steps    int
	Easing   EasingFunc
	step     int
}

// NewTween sizes a tween so it lasts about duration when stepped once per
// frame. It always has at least one step.
func NewTween(from, to int, duration, frame time.Duration, easing EasingFunc) *Tween {
	steps := 1
	if frame > 0 && duration > frame {
		steps = int(math.Ceil(float64(duration) / float64(frame)))
	}
	if easing == nil {
		easing = EaseSmoothstep
	}
	return &Tween{From: from, To: to, Steps: steps, Easing: easing}
}

// Step advances one frame and returns the value for that frame.
func (t *Tween) Step() int {
	if t.step < t.Steps {
		t.step++
	}
	return t.Value()
}

// Value is the value at the current step.
func (t *Tween) Value() int {
	if t.Done() {
		return t.To
	}
	p := float64(t.step) / float64(t.Steps)
	return t.From + int(math.Round(float64(t.To-t.From)*t.Easing(p)))
}

// Done reports whether the final step has been reached.
func (t *Tween) Done() bool { return t.step >= t.Steps }
