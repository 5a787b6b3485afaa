// Package reconcile implements the Rezi reconciler: it pairs a
// previous instance tree against a next VNode tree to produce a new
// instance tree plus a report of reused/new/unmounted instance IDs,
// and owns widget-local hook state across that process.
package reconcile

import "github.com/rezi-tui/rezi/vnode"

// InstanceID is a stable, monotonically allocated identifier for a live
// node. IDs are never reused.
type InstanceID uint32

// Instance is a live, addressable node persisting across frames.
type Instance struct {
	ID       InstanceID
	VNode    *vnode.Node
	Children []*Instance

	slotKey   string
	prevIndex int
}

// Allocator yields monotonically increasing instance IDs starting at 1.
// It is the sole owner of ID uniqueness for a given reconciler; it must
// not be shared across independently-reconciled trees unless the caller
// wants IDs to be globally unique across them.
type Allocator struct {
	next uint32
}

// NewAllocator creates an Allocator starting at 1.
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// Next returns the next unused ID and advances the allocator. IDs are
// never recycled, even across unmounts.
func (a *Allocator) Next() InstanceID {
	id := InstanceID(a.next)
	a.next++
	return id
}
