// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/hosttest/clock.go
// Summary: Manual clock that runs deferred callbacks deterministically.

package hosttest

import (
	"sort"
	"time"
)

type timer struct {
	due time.Duration
	seq int
	fn  func()
}

// Clock collects deferred callbacks and runs them when advanced.
type Clock struct {
	now    time.Duration
	seq    int
	timers []timer
}

// NewClock returns a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Defer schedules fn to run delay after the current clock time.
func (c *Clock) Defer(fn func(), delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	c.seq++
	c.timers = append(c.timers, timer{due: c.now + delay, seq: c.seq, fn: fn})
}

// Now returns the elapsed virtual time.
func (c *Clock) Now() time.Duration { return c.now }

// Pending returns the number of callbacks not yet run.
func (c *Clock) Pending() int { return len(c.timers) }

// Advance moves time forward by d, running every callback that falls due,
// including callbacks scheduled by earlier callbacks.
func (c *Clock) Advance(d time.Duration) {
	target := c.now + d
	for {
		idx := c.next()
		if idx < 0 || c.timers[idx].due > target {
			break
		}
		t := c.timers[idx]
		c.timers = append(c.timers[:idx], c.timers[idx+1:]...)
		if t.due > c.now {
			c.now = t.due
		}
		t.fn()
	}
	c.now = target
}

// RunUntilIdle advances until no callbacks remain or limit is reached.
func (c *Clock) RunUntilIdle(limit time.Duration) {
	deadline := c.now + limit
	for len(c.timers) > 0 {
		idx := c.next()
		if c.timers[idx].due > deadline {
			return
		}
		c.Advance(c.timers[idx].due - c.now)
	}
}

func (c *Clock) next() int {
	if len(c.timers) == 0 {
		return -1
	}
	idx := 0
	for i, t := range c.timers {
		best := c.timers[idx]
		if t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			idx = i
		}
	}
	return idx
}

// Schedule lists pending due times in order, for assertions.
func (c *Clock) Schedule() []time.Duration {
	out := make([]time.Duration, 0, len(c.timers))
	for _, t := range c.timers {
		out = append(out, t.due)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
