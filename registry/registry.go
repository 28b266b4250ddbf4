// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry.go
// Summary: Namespace-keyed registry of live popups.
// Usage: The popup manager registers each popup on creation and unregisters
//        it on destroy; ForEachInNamespace drives bulk operations.

package registry

import (
	"log"
	"sort"
	"sync"
)

// Registry assigns ids and groups values by namespace. Ids are unique across
// namespaces and never reused.
type Registry[T any] struct {
	mu     sync.RWMutex
	nextID int
	spaces map[string]map[int]T
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{spaces: make(map[string]map[int]T)}
}

// Register stores v under ns and returns its id.
func (r *Registry[T]) Register(ns string, v T) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	space, ok := r.spaces[ns]
	if !ok {
		space = make(map[int]T)
		r.spaces[ns] = space
	}
	space[r.nextID] = v
	log.Printf("Registry: Registered popup %d in namespace %q", r.nextID, ns)
	return r.nextID
}

// Unregister removes id from ns. It reports whether the entry existed.
func (r *Registry[T]) Unregister(ns string, id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	space, ok := r.spaces[ns]
	if !ok {
		return false
	}
	if _, ok := space[id]; !ok {
		return false
	}
	delete(space, id)
	if len(space) == 0 {
		delete(r.spaces, ns)
	}
	return true
}

// Get returns the value registered as id in ns.
func (r *Registry[T]) Get(ns string, id int) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.spaces[ns][id]
	return v, ok
}

// ForEachInNamespace calls fn for every entry of ns in ascending id order.
// fn runs on a snapshot, so it may register or unregister entries.
func (r *Registry[T]) ForEachInNamespace(ns string, fn func(id int, v T)) {
	r.mu.RLock()
	space := r.spaces[ns]
	ids := make([]int, 0, len(space))
	for id := range space {
		ids = append(ids, id)
	}
	snapshot := make(map[int]T, len(space))
	for id, v := range space {
		snapshot[id] = v
	}
	r.mu.RUnlock()

	sort.Ints(ids)
	for _, id := range ids {
		fn(id, snapshot[id])
	}
}

// Namespaces lists namespaces that hold at least one entry, sorted.
func (r *Registry[T]) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.spaces))
	for ns := range r.spaces {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of entries in ns.
func (r *Registry[T]) Count(ns string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.spaces[ns])
}

// Len returns the number of entries across all namespaces.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, space := range r.spaces {
		n += len(space)
	}
	return n
}
