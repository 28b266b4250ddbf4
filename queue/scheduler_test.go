// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package queue

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/framegrace/floatpane/host/hosttest"
)

type recorder struct {
	calls []string
	fail  map[string]error
	panic map[string]bool
}

func (r *recorder) invoke(name string, args any) error {
	r.calls = append(r.calls, name)
	if r.panic[name] {
		panic("boom")
	}
	return r.fail[name]
}

func newTestScheduler(t *testing.T) (*Scheduler, *hosttest.Clock, *recorder, *[]error) {
	t.Helper()
	clock := hosttest.NewClock()
	rec := &recorder{fail: map[string]error{}, panic: map[string]bool{}}
	var reported []error
	s := New(clock, rec.invoke, func(item Item, err error) {
		reported = append(reported, err)
	})
	return s, clock, rec, &reported
}

func TestWaitOrdersOperations(t *testing.T) {
	s, clock, rec, _ := newTestScheduler(t)

	s.Enqueue(Op("op1", nil))
	s.Enqueue(Wait(500 * time.Millisecond))
	s.Enqueue(Op("op2", nil))
	s.Advance()

	if !reflect.DeepEqual(rec.calls, []string{"op1"}) {
		t.Fatalf("op1 must run before wait is scheduled, calls=%v", rec.calls)
	}
	if clock.Pending() != 1 || !s.Waiting() {
		t.Fatalf("expected wait to be pending, pending=%d waiting=%v", clock.Pending(), s.Waiting())
	}

	clock.Advance(499 * time.Millisecond)
	if len(rec.calls) != 1 {
		t.Fatalf("op2 ran before the wait elapsed: %v", rec.calls)
	}
	clock.Advance(time.Millisecond)
	if !reflect.DeepEqual(rec.calls, []string{"op1", "op2"}) {
		t.Fatalf("calls = %v", rec.calls)
	}
	if s.Waiting() || s.Len() != 0 {
		t.Fatalf("scheduler should be idle")
	}
}

func TestBlockUnrollsInPlace(t *testing.T) {
	s, clock, rec, _ := newTestScheduler(t)

	s.Enqueue(Op("a", nil))
	s.Enqueue(Block(Op("b", nil), Wait(10*time.Millisecond), Op("c", nil)))
	s.Enqueue(Op("d", nil))
	s.Advance()

	if !reflect.DeepEqual(rec.calls, []string{"a", "b"}) {
		t.Fatalf("calls = %v", rec.calls)
	}
	clock.Advance(10 * time.Millisecond)
	if !reflect.DeepEqual(rec.calls, []string{"a", "b", "c", "d"}) {
		t.Fatalf("calls = %v", rec.calls)
	}
}

func TestNestedBlocksAndNoops(t *testing.T) {
	s, _, rec, _ := newTestScheduler(t)
	s.Enqueue(Block(Noop(), Block(Op("x", nil), Op("y", nil)), Noop()))
	s.Enqueue(Op("z", nil))
	s.Advance()
	if !reflect.DeepEqual(rec.calls, []string{"x", "y", "z"}) {
		t.Fatalf("calls = %v", rec.calls)
	}
}

// The scheduler behaves like a single-permit semaphore: while a driver holds
// the token nothing else runs, and releasing it resumes the queue.
func TestTokenIsSinglePermit(t *testing.T) {
	s, clock, _, _ := newTestScheduler(t)
	var order []string
	var held *Token
	s.invoke = func(name string, args any) error {
		order = append(order, name)
		if name == "animate" {
			held = s.Acquire()
			clock.Defer(held.Release, 30*time.Millisecond)
		}
		return nil
	}

	s.Enqueue(Op("animate", nil))
	s.Enqueue(Op("after", nil))
	s.Advance()
	if !reflect.DeepEqual(order, []string{"animate"}) || !s.Waiting() {
		t.Fatalf("after must wait for the token, order=%v", order)
	}

	s.Advance()
	if len(order) != 1 {
		t.Fatalf("advance while waiting must not run anything: %v", order)
	}

	clock.Advance(30 * time.Millisecond)
	if !reflect.DeepEqual(order, []string{"animate", "after"}) {
		t.Fatalf("order = %v", order)
	}

	held.Release()
	if len(order) != 2 {
		t.Fatalf("second release must be a no-op")
	}
}

func TestFailuresDoNotJamQueue(t *testing.T) {
	s, _, rec, reported := newTestScheduler(t)
	rec.fail["bad"] = errors.New("nope")
	rec.panic["worse"] = true

	s.Enqueue(Op("bad", nil))
	s.Enqueue(Op("worse", nil))
	s.Enqueue(Op("good", nil))
	s.Advance()

	if !reflect.DeepEqual(rec.calls, []string{"bad", "worse", "good"}) {
		t.Fatalf("calls = %v", rec.calls)
	}
	if len(*reported) != 2 {
		t.Fatalf("expected two reported failures, got %v", *reported)
	}
}

func TestClearInvalidatesOutstandingToken(t *testing.T) {
	s, clock, rec, _ := newTestScheduler(t)
	s.Enqueue(Wait(time.Second))
	s.Enqueue(Op("never", nil))
	s.Advance()

	s.Clear()
	if !s.Stopped() || s.Len() != 0 {
		t.Fatalf("clear should stop and empty")
	}

	s.Enqueue(Op("queued-while-stopped", nil))
	s.Advance()
	if len(rec.calls) != 0 {
		t.Fatalf("stopped scheduler ran %v", rec.calls)
	}

	s.Restart()
	s.Enqueue(Wait(100 * time.Millisecond))
	s.Enqueue(Op("fresh", nil))
	s.Advance()

	// The stale one-second wait fires first on its own schedule but must
	// not release the new wait.
	clock.Advance(99 * time.Millisecond)
	if !reflect.DeepEqual(rec.calls, []string{"queued-while-stopped"}) {
		t.Fatalf("fresh ran early: %v", rec.calls)
	}
	clock.Advance(time.Second)
	if !reflect.DeepEqual(rec.calls, []string{"queued-while-stopped", "fresh"}) {
		t.Fatalf("calls = %v", rec.calls)
	}
}

func TestEnqueuePriorityKeepsOrder(t *testing.T) {
	s, _, rec, _ := newTestScheduler(t)
	s.Enqueue(Op("tail", nil))
	s.EnqueuePriority(Op("first", nil), Op("second", nil))
	s.Advance()
	if !reflect.DeepEqual(rec.calls, []string{"first", "second", "tail"}) {
		t.Fatalf("calls = %v", rec.calls)
	}
}
