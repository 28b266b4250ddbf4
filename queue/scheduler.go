// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: queue/scheduler.go
// Summary: Ordered per-popup operation queue with cooperative waiting.
// Usage: Popup handles enqueue chained operations and call Advance; async
//        drivers hold the in-flight Token and release it when they finish.
// Notes: The waiting flag is a single-permit semaphore. Whoever holds the
//        Token must release it exactly once; stale tokens release nothing.

package queue

import (
	"fmt"
	"log"
	"time"
)

// Deferrer runs fn on the owning event loop after delay.
type Deferrer interface {
	Defer(fn func(), delay time.Duration)
}

// Invoker executes a named operation synchronously.
type Invoker func(name string, args any) error

// Reporter receives operation failures. The scheduler keeps draining.
type Reporter func(item Item, err error)

// Scheduler drains items strictly in the order they were enqueued.
type Scheduler struct {
	items   []Item
	waiting bool
	stopped bool
	gen     uint64

	deferrer Deferrer
	invoke   Invoker
	report   Reporter
}

// New creates an idle scheduler.
func New(d Deferrer, invoke Invoker, report Reporter) *Scheduler {
	if report == nil {
		report = func(item Item, err error) {
			log.Printf("Queue: %s failed: %v", item, err)
		}
	}
	return &Scheduler{deferrer: d, invoke: invoke, report: report}
}

// Enqueue appends item to the tail.
func (s *Scheduler) Enqueue(item Item) {
	s.items = append(s.items, item)
}

// EnqueuePriority inserts items at the head, keeping their relative order.
func (s *Scheduler) EnqueuePriority(items ...Item) {
	if len(items) == 0 {
		return
	}
	head := make([]Item, 0, len(items)+len(s.items))
	head = append(head, items...)
	s.items = append(head, s.items...)
}

// Len reports the number of pending items.
func (s *Scheduler) Len() int { return len(s.items) }

// Waiting reports whether an item is in flight.
func (s *Scheduler) Waiting() bool { return s.waiting }

// Stopped reports whether Clear was called without a Restart.
func (s *Scheduler) Stopped() bool { return s.stopped }

// Advance runs pending items until the queue empties, stops, or an item
// leaves the scheduler waiting.
func (s *Scheduler) Advance() {
	for !s.stopped && len(s.items) > 0 {
		item := s.items[0]
		s.items = s.items[1:]

		if s.waiting {
			s.EnqueuePriority(item)
			return
		}

		switch item.Kind {
		case KindWait:
			tok := s.Acquire()
			s.deferrer.Defer(tok.Release, item.Delay)
			return
		case KindBlock:
			s.EnqueuePriority(item.Items...)
		case KindOperation:
			s.run(item)
		}
	}
}

func (s *Scheduler) run(item Item) {
	defer func() {
		if r := recover(); r != nil {
			s.report(item, fmt.Errorf("panic: %v", r))
		}
	}()
	if s.invoke == nil {
		return
	}
	if err := s.invoke(item.Name, item.Args); err != nil {
		s.report(item, err)
	}
}

// Clear stops the scheduler, drops pending items and invalidates any
// outstanding token.
func (s *Scheduler) Clear() {
	s.stopped = true
	s.items = nil
	s.waiting = false
	s.gen++
}

// Restart re-arms a cleared scheduler.
func (s *Scheduler) Restart() {
	s.stopped = false
}

// Acquire marks the scheduler as waiting and hands out the in-flight token.
func (s *Scheduler) Acquire() *Token {
	s.waiting = true
	return &Token{s: s, gen: s.gen}
}

// Token is the single in-flight permit of a Scheduler.
type Token struct {
	s        *Scheduler
	gen      uint64
	released bool
}

// Valid reports whether the token still belongs to the live generation of
// a running scheduler and has not been released.
func (t *Token) Valid() bool {
	return t != nil && !t.released && !t.s.stopped && t.gen == t.s.gen
}

// Release returns the permit and resumes draining. Only the first call on a
// current-generation token has any effect.
func (t *Token) Release() {
	if t == nil || t.released {
		return
	}
	t.released = true
	if t.gen != t.s.gen {
		return
	}
	t.s.waiting = false
	t.s.Advance()
}
