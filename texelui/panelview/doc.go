// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package panelview keeps an active panel index in step with a scrolling
// viewport.
//
// A Controller samples the geometry of its mounted panels at most once per
// frame, picks the panel that sits inside the viewport band and notifies
// subscribers (sticky cards, dot rows, thumbnail strips). The reverse
// direction goes through NavigateTo, which sets the index immediately and
// holds a navigation lock while the viewport scrolls to the panel, so the
// scroll it causes cannot drag the index back.
//
// Controllers are not safe for concurrent use. Every call, including the
// callbacks delivered by a Scheduler, must happen on the UI goroutine.
package panelview
