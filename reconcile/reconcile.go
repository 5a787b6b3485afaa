package reconcile

import (
	"fmt"

	"github.com/rezi-tui/rezi/vnode"
)

// Report summarizes the effect of one Reconciler.Reconcile call.
type Report struct {
	ReusedIDs    []InstanceID
	NewIDs       []InstanceID
	UnmountedIDs []InstanceID
}

// Reconciler owns the instance ID allocator and hook-state registry for
// one logical widget tree across frames.
type Reconciler struct {
	alloc *Allocator
	hooks *HookRegistry
}

// NewReconciler creates an empty Reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{alloc: NewAllocator(), hooks: newHookRegistry()}
}

// Hooks exposes the hook-state registry so widget implementations can
// read/write their local state during a render pass.
func (r *Reconciler) Hooks() *HookRegistry { return r.hooks }

// slotKey computes the reconciliation slot key for a child at position
// index within its sibling list: "k:{key}" if the
// VNode carries a non-empty Key, otherwise "i:{position}".
func slotKey(n *vnode.Node, index int) string {
	if n.Key != "" {
		return "k:" + n.Key
	}
	return fmt.Sprintf("i:%d", index)
}

// discriminator returns the value that must match between a previous
// instance's VNode and a next VNode for the instance to be reused.
// For widget leaves the built-in widget kind is part of the
// discriminator, since a button reusing an input's instance would be a
// silent type confusion.
func discriminator(n *vnode.Node) string {
	if n.Kind == vnode.KindWidget && n.Widget != nil {
		return "widget:" + string(n.Widget.Kind)
	}
	return n.Kind.String()
}

// Reconcile pairs prevChildren (instances surviving from the last frame,
// in their prior order) against nextChildren (this frame's VNodes, in
// application-specified order) and returns the new instance list plus a
// report of IDs reused, newly allocated, and unmounted.
//
// Reconciliation recurses into each matched or newly-created instance's
// own children, so a single top-level call reconciles an entire subtree.
func (r *Reconciler) Reconcile(prevChildren []*Instance, nextChildren []*vnode.Node) ([]*Instance, Report) {
	var report Report

	// Step 2: build slot -> previous instance, first-wins on collision.
	prevBySlot := make(map[string]*Instance, len(prevChildren))
	for i, inst := range prevChildren {
		key := inst.slotKey
		if key == "" {
			key = fmt.Sprintf("i:%d", i)
		}
		if _, exists := prevBySlot[key]; !exists {
			prevBySlot[key] = inst
		}
	}

	matched := make(map[*Instance]bool, len(prevChildren))
	result := make([]*Instance, 0, len(nextChildren))

	for i, next := range nextChildren {
		key := slotKey(next, i)
		prev, ok := prevBySlot[key]

		if ok && !matched[prev] && discriminator(prev.VNode) == discriminator(next) {
			matched[prev] = true
			childInstances, childReport := r.Reconcile(prev.Children, next.Children())
			report.ReusedIDs = append(report.ReusedIDs, prev.ID)
			report.ReusedIDs = append(report.ReusedIDs, childReport.ReusedIDs...)
			report.NewIDs = append(report.NewIDs, childReport.NewIDs...)
			report.UnmountedIDs = append(report.UnmountedIDs, childReport.UnmountedIDs...)

			result = append(result, &Instance{
				ID:        prev.ID,
				VNode:     next,
				Children:  childInstances,
				slotKey:   key,
				prevIndex: i,
			})
			continue
		}

		// New mount: fresh ID, fresh children (all of which are "new"
		// relative to an empty previous list).
		id := r.alloc.Next()
		childInstances, childReport := r.Reconcile(nil, next.Children())
		report.NewIDs = append(report.NewIDs, id)
		report.NewIDs = append(report.NewIDs, childReport.NewIDs...)
		report.UnmountedIDs = append(report.UnmountedIDs, childReport.UnmountedIDs...)

		result = append(result, &Instance{
			ID:        id,
			VNode:     next,
			Children:  childInstances,
			slotKey:   key,
			prevIndex: i,
		})
	}

	// Step 4: previous instances never matched to any next slot are
	// unmounted, along with their whole subtree and hook state.
	for _, inst := range prevChildren {
		if !matched[inst] {
			r.unmountSubtree(inst, &report)
		}
	}

	return result, report
}

// unmountSubtree reports inst and every descendant as unmounted and
// releases their hook-local state.
func (r *Reconciler) unmountSubtree(inst *Instance, report *Report) {
	report.UnmountedIDs = append(report.UnmountedIDs, inst.ID)
	r.hooks.release(inst.ID)
	for _, child := range inst.Children {
		r.unmountSubtree(child, report)
	}
}

// Mount builds a fresh instance tree with no previous state, equivalent
// to Reconcile(nil, roots) but named for the common "first frame" case.
func (r *Reconciler) Mount(roots []*vnode.Node) ([]*Instance, Report) {
	return r.Reconcile(nil, roots)
}
