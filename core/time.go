// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"time"
)

// NewTime creates a new time service
func NewTime(cfg TimeConfiguration) *Time {
	var interval time.Duration
	if cfg.FramesPerSecond <= 0 {
		interval = time.Nanosecond
	} else {
		interval = time.Second / (time.Duration)(cfg.FramesPerSecond)
	}

	eventDelay := time.Duration(cfg.EventPollDelay) * time.Millisecond
	if eventDelay <= 0 {
		eventDelay = time.Millisecond
	}

	return &Time{
		fps:            cfg.FramesPerSecond,
		fpsTicker:      time.NewTicker(interval),
		eventPollDelay: cfg.EventPollDelay,
		eventTicker:    time.NewTicker(eventDelay),
	}
}

// Time contains the tickers pacing the frame and event loops
type Time struct {
	fps       int
	fpsTicker *time.Ticker

	eventPollDelay int
	eventTicker    *time.Ticker
}

// Fps gets the set frames per second
func (t *Time) Fps() int {
	return t.fps
}

// FpsTicker gets the initialized fps ticker
func (t *Time) FpsTicker() *time.Ticker {
	return t.fpsTicker
}

// EventTicker gets the initialized event ticker for the event loop
func (t *Time) EventTicker() *time.Ticker {
	return t.eventTicker
}

// Stop stops both tickers
func (t *Time) Stop() {
	t.fpsTicker.Stop()
	t.eventTicker.Stop()
}
