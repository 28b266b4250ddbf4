// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: queue/item.go
// Summary: Queue item variants used by the per-popup scheduler.

package queue

import (
	"fmt"
	"time"
)

// Kind tags an Item.
type Kind uint8

const (
	KindNoop Kind = iota
	KindOperation
	KindWait
	KindBlock
)

// Item is one entry of a popup's operation queue.
type Item struct {
	Kind  Kind
	Name  string        // KindOperation
	Args  any           // KindOperation, captured by value at chain time
	Delay time.Duration // KindWait
	Items []Item        // KindBlock
}

// Op builds an operation item.
func Op(name string, args any) Item {
	return Item{Kind: KindOperation, Name: name, Args: args}
}

// Wait builds a timed pause.
func Wait(d time.Duration) Item {
	return Item{Kind: KindWait, Delay: d}
}

// Block groups items that are unrolled in place when reached.
func Block(items ...Item) Item {
	return Item{Kind: KindBlock, Items: append([]Item(nil), items...)}
}

// Noop is an empty item.
func Noop() Item {
	return Item{}
}

func (it Item) String() string {
	switch it.Kind {
	case KindOperation:
		return it.Name
	case KindWait:
		return fmt.Sprintf("wait(%s)", it.Delay)
	case KindBlock:
		return fmt.Sprintf("block(%d)", len(it.Items))
	default:
		return "noop"
	}
}
