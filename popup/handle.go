// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popup/handle.go
// Summary: Chainable queued handle and immediate handle over one popup.
// Usage: p.Queue().Show(0).Wait(time.Second).Fade(0)
//        err := p.Now().Move(popup.Down, 2)

package popup

import (
	"time"

	"github.com/framegrace/floatpane/geometry"
	"github.com/framegrace/floatpane/queue"
)

// QueuedOps appends operations to the popup's scheduler. Failures are
// reported through the host instead of being returned.
type QueuedOps interface {
	Show(d time.Duration) QueuedOps
	Hide(d time.Duration) QueuedOps
	Redraw() QueuedOps
	Resize() QueuedOps
	Configure(req Request) QueuedOps
	SetLines(lines []string) QueuedOps
	Notification(d time.Duration) QueuedOps
	Blend(v int) QueuedOps
	Fade(d time.Duration) QueuedOps
	FadeTo(d time.Duration, target int) QueuedOps
	Move(dir Direction, cells int) QueuedOps
	MoveWith(o MoveOptions) QueuedOps
	Custom(rel geometry.Relative) QueuedOps
	Destroy() QueuedOps
	Wait(d time.Duration) QueuedOps
}

// ImmediateOps drops pending queued work and runs the operation right away.
type ImmediateOps interface {
	Show(d time.Duration) error
	Hide(d time.Duration) error
	Redraw() error
	Resize() error
	Configure(req Request) error
	SetLines(lines []string) error
	Notification(d time.Duration) error
	Blend(v int) error
	Fade(d time.Duration) error
	FadeTo(d time.Duration, target int) error
	Move(dir Direction, cells int) error
	MoveWith(o MoveOptions) error
	Custom(rel geometry.Relative) error
	Destroy() error
}

// Queue returns the chainable handle. With the NoQueue option every call
// replaces whatever was pending.
func (p *Popup) Queue() QueuedOps { return queued{p: p} }

// Now returns the immediate handle.
func (p *Popup) Now() ImmediateOps { return immediate{p: p} }

type queued struct{ p *Popup }

func (q queued) push(item queue.Item) QueuedOps {
	p := q.p
	if p.destroyed {
		p.report(item.Name, ErrDestroyed)
		return q
	}
	if p.opts.NoQueue {
		p.sched.Clear()
		p.sched.Restart()
	}
	p.sched.Enqueue(item)
	p.sched.Advance()
	return q
}

func (q queued) Show(d time.Duration) QueuedOps {
	if d > 0 {
		return q.push(queue.Block(queue.Op(opShow, nil), queue.Wait(d), queue.Op(opHide, nil)))
	}
	return q.push(queue.Op(opShow, nil))
}

func (q queued) Hide(d time.Duration) QueuedOps {
	if d > 0 {
		return q.push(queue.Block(queue.Wait(d), queue.Op(opHide, nil)))
	}
	return q.push(queue.Op(opHide, nil))
}

func (q queued) Redraw() QueuedOps { return q.push(queue.Op(opRedraw, nil)) }

func (q queued) Resize() QueuedOps { return q.push(queue.Op(opResize, nil)) }

func (q queued) Configure(req Request) QueuedOps {
	return q.push(queue.Op(opConfigure, MergeOverwrite(Request{}, req)))
}

func (q queued) SetLines(lines []string) QueuedOps {
	return q.push(queue.Op(opSetLines, append([]string(nil), lines...)))
}

func (q queued) Notification(d time.Duration) QueuedOps {
	return q.push(q.p.notificationBlock(d))
}

func (q queued) Blend(v int) QueuedOps { return q.push(queue.Op(opBlend, v)) }

func (q queued) Fade(d time.Duration) QueuedOps { return q.FadeTo(d, 100) }

func (q queued) FadeTo(d time.Duration, target int) QueuedOps {
	return q.push(queue.Op(opFade, fadeArgs{Duration: d, Target: target}))
}

func (q queued) Move(dir Direction, cells int) QueuedOps {
	return q.push(queue.Op(opMove, MoveOptions{Direction: dir, Cells: cells}))
}

func (q queued) MoveWith(o MoveOptions) QueuedOps { return q.push(queue.Op(opMove, o)) }

func (q queued) Custom(rel geometry.Relative) QueuedOps { return q.push(queue.Op(opCustom, rel)) }

func (q queued) Destroy() QueuedOps { return q.push(queue.Op(opDestroy, nil)) }

func (q queued) Wait(d time.Duration) QueuedOps { return q.push(queue.Wait(d)) }

// notificationBlock shows the popup with the notification preset, keeps it
// up for d and fades it out.
func (p *Popup) notificationBlock(d time.Duration) queue.Item {
	configure, wait, fade := p.notificationItems(d)
	return queue.Block(configure, queue.Op(opShow, nil), wait, fade)
}

func (p *Popup) notificationItems(d time.Duration) (configure, wait, fade queue.Item) {
	if d <= 0 {
		d = p.cfg.GetDuration("notification", "duration_ms", 3*time.Second)
	}
	fadeFor := p.cfg.GetDuration("notification", "fade_ms", 400*time.Millisecond)
	configure = queue.Op(opConfigure, p.m.notificationRequest(p.cfg))
	wait = queue.Wait(d)
	fade = queue.Op(opFade, fadeArgs{Duration: fadeFor, Target: 100, AutoHide: true})
	return configure, wait, fade
}

type immediate struct{ p *Popup }

// run discards pending work, re-arms the scheduler and invokes name.
func (n immediate) run(name string, args any) error {
	p := n.p
	if p.destroyed {
		return wrapOp(name, ErrDestroyed)
	}
	p.sched.Clear()
	p.sched.Restart()
	return p.invoke(name, args)
}

// then queues follow-up items behind an immediate operation.
func (n immediate) then(items ...queue.Item) {
	for _, it := range items {
		n.p.sched.Enqueue(it)
	}
	n.p.sched.Advance()
}

func (n immediate) Show(d time.Duration) error {
	if err := n.run(opShow, nil); err != nil {
		return err
	}
	if d > 0 {
		n.then(queue.Wait(d), queue.Op(opHide, nil))
	}
	return nil
}

func (n immediate) Hide(d time.Duration) error {
	if d <= 0 {
		return n.run(opHide, nil)
	}
	if n.p.destroyed {
		return wrapOp(opHide, ErrDestroyed)
	}
	n.p.sched.Clear()
	n.p.sched.Restart()
	n.then(queue.Wait(d), queue.Op(opHide, nil))
	return nil
}

func (n immediate) Redraw() error { return n.run(opRedraw, nil) }

func (n immediate) Resize() error { return n.run(opResize, nil) }

func (n immediate) Configure(req Request) error { return n.run(opConfigure, req) }

func (n immediate) SetLines(lines []string) error { return n.run(opSetLines, lines) }

func (n immediate) Notification(d time.Duration) error {
	configure, wait, fade := n.p.notificationItems(d)
	if err := n.run(opConfigure, configure.Args); err != nil {
		return err
	}
	if err := n.p.invoke(opShow, nil); err != nil {
		return err
	}
	n.then(wait, fade)
	return nil
}

func (n immediate) Blend(v int) error { return n.run(opBlend, v) }

func (n immediate) Fade(d time.Duration) error { return n.FadeTo(d, 100) }

func (n immediate) FadeTo(d time.Duration, target int) error {
	return n.run(opFade, fadeArgs{Duration: d, Target: target})
}

func (n immediate) Move(dir Direction, cells int) error {
	return n.run(opMove, MoveOptions{Direction: dir, Cells: cells})
}

func (n immediate) MoveWith(o MoveOptions) error { return n.run(opMove, o) }

func (n immediate) Custom(rel geometry.Relative) error { return n.run(opCustom, rel) }

func (n immediate) Destroy() error { return n.run(opDestroy, nil) }
