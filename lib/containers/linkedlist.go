// SPDX-License-Identifier: GPL-2.0-or-later

// Package containers holds small generic data structures: a
// doubly-linked list the replacement policies use to track recency/age
// order (LFU also uses one list per frequency bucket), and LRUCache, a
// diagnostic-only cache that no replacement policy uses.
package containers

import "fmt"

// LinkedListEntry is an entry in a LinkedList.
type LinkedListEntry[T any] struct {
	list         *LinkedList[T]
	older, newer *LinkedListEntry[T]
	Value        T
}

// LinkedList is a doubly-linked list ordered from "oldest" to "newest".
//
// The oldest/newest naming (rather than head/tail or front/back) is
// deliberate: every user of this list is a replacement policy for which
// "age" is the meaningful axis, and FIFO/LRU/ARC all want "push to the
// newest end" and "evict from the oldest end" to read naturally.
type LinkedList[T any] struct {
	Len            int
	Oldest, Newest *LinkedListEntry[T]
}

// IsEmpty returns whether the list is empty.
func (l *LinkedList[T]) IsEmpty() bool {
	return l.Oldest == nil
}

// PushNewest appends a value at the newest end, returning the entry.
func (l *LinkedList[T]) PushNewest(v T) *LinkedListEntry[T] {
	entry := &LinkedListEntry[T]{Value: v}
	l.storeNewest(entry)
	return entry
}

func (l *LinkedList[T]) storeNewest(entry *LinkedListEntry[T]) {
	if entry.list != nil {
		panic(fmt.Errorf("containers.LinkedList: entry %p is already in a list", entry))
	}
	l.Len++
	entry.list = l
	entry.older = l.Newest
	l.Newest = entry
	if entry.older == nil {
		l.Oldest = entry
	} else {
		entry.older.newer = entry
	}
}

// Delete removes entry from the list. It is invalid to call Delete on an
// entry not currently in this list.
func (l *LinkedList[T]) Delete(entry *LinkedListEntry[T]) {
	if entry.list != l {
		panic(fmt.Errorf("containers.LinkedList.Delete: entry %p not in list", entry))
	}
	l.Len--
	if entry.newer == nil {
		l.Newest = entry.older
	} else {
		entry.newer.older = entry.older
	}
	if entry.older == nil {
		l.Oldest = entry.newer
	} else {
		entry.older.newer = entry.newer
	}
	entry.list = nil
	entry.older = nil
	entry.newer = nil
}

// MoveToNewest moves entry to the newest end of the list. If entry is
// already the newest, this is a no-op.
func (l *LinkedList[T]) MoveToNewest(entry *LinkedListEntry[T]) {
	if entry.list != l {
		panic(fmt.Errorf("containers.LinkedList.MoveToNewest: entry %p not in list", entry))
	}
	if l.Newest == entry {
		return
	}
	l.Delete(entry)
	l.storeNewest(entry)
}

// List returns the list entry currently belongs to, or nil if it has
// been removed from every list.
func (entry *LinkedListEntry[T]) List() *LinkedList[T] { return entry.list }

// Older returns the entry just older than entry, or nil if entry is the
// oldest entry in the list.
func Older[T any](entry *LinkedListEntry[T]) *LinkedListEntry[T] { return entry.older }

// Newer returns the entry just newer than entry, or nil if entry is the
// newest entry in the list.
func Newer[T any](entry *LinkedListEntry[T]) *LinkedListEntry[T] { return entry.newer }

// Each walks the list from oldest to newest, calling fn(entry.Value) for
// each entry. It exists mainly for tests and invariant-checking code that
// needs to compare the list's contents against a map.
func (l *LinkedList[T]) Each(fn func(T)) {
	for entry := l.Oldest; entry != nil; entry = entry.newer {
		fn(entry.Value)
	}
}
