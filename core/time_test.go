// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"
	"time"

	"github.com/devblok/glowl/core"
	"github.com/stretchr/testify/assert"
)

func TestTimeTickers(t *testing.T) {
	tm := core.NewTime(core.TimeConfiguration{FramesPerSecond: 200, EventPollDelay: 1})
	defer tm.Stop()

	assert.Equal(t, 200, tm.Fps())
	for _, ticker := range []*time.Ticker{tm.FpsTicker(), tm.EventTicker()} {
		select {
		case <-ticker.C:
		case <-time.After(time.Second):
			t.Fatal("ticker did not fire")
		}
	}
}

func TestTimeUnlimited(t *testing.T) {
	tm := core.NewTime(core.TimeConfiguration{})
	defer tm.Stop()

	assert.Zero(t, tm.Fps())
	select {
	case <-tm.FpsTicker().C:
	case <-time.After(time.Second):
		t.Fatal("unlimited ticker did not fire")
	}
}
