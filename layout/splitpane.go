package layout

import (
	"github.com/rezi-tui/rezi/reconcile"
	"github.com/rezi-tui/rezi/vnode"
)

// splitPaneConfig is the subset of a splitPane widget's props this
// engine understands. Panels are widget-managed content, not generic
// VNode children, so they are read straight out of Props rather than
// from the instance tree; arranged panels therefore carry
// InstanceID == 0 (not individually reconciled).
type splitPaneConfig struct {
	horizontal bool
	panels     []*vnode.Node
	sizes      []float64
	minSizes   []*float64
	maxSizes   []*float64
	collapsed  []bool
}

func readSplitPaneConfig(n *vnode.Node) splitPaneConfig {
	cfg := splitPaneConfig{horizontal: true}
	props := n.Widget.Props
	if dir, ok := props["direction"].(string); ok && dir == "column" {
		cfg.horizontal = false
	}
	if panels, ok := props["panels"].([]*vnode.Node); ok {
		cfg.panels = panels
	}
	if sizes, ok := props["sizes"].([]float64); ok {
		cfg.sizes = sizes
	}
	if mins, ok := props["minSizes"].([]*float64); ok {
		cfg.minSizes = mins
	}
	if maxs, ok := props["maxSizes"].([]*float64); ok {
		cfg.maxSizes = maxs
	}
	if collapsed, ok := props["collapsed"].([]bool); ok {
		cfg.collapsed = collapsed
	}
	return cfg
}

func (cfg splitPaneConfig) isCollapsed(i int) bool {
	return i < len(cfg.collapsed) && cfg.collapsed[i]
}

func (cfg splitPaneConfig) minAt(i int) *int32 {
	if i >= len(cfg.minSizes) || cfg.minSizes[i] == nil {
		return nil
	}
	v := int32(*cfg.minSizes[i])
	return &v
}

func (cfg splitPaneConfig) maxAt(i int) *int32 {
	if i >= len(cfg.maxSizes) || cfg.maxSizes[i] == nil {
		return nil
	}
	v := int32(*cfg.maxSizes[i])
	return &v
}

// arrangeSplitPane arranges N panels along cfg's direction using
// percent-of-available sizes, with 1-cell dividers between panels and
// collapsed panels pinned to their min (default 0).
func arrangeSplitPane(n *vnode.Node, tree *LayoutTree, x, y, w, h int32, cache *Cache) {
	if n.Widget == nil {
		return
	}
	cfg := readSplitPaneConfig(n)
	count := len(cfg.panels)
	if count == 0 {
		return
	}
	mainTotal := w
	if !cfg.horizontal {
		mainTotal = h
	}
	dividerCount := int32(count - 1)
	available := mainTotal - dividerCount
	if available < 0 {
		available = 0
	}

	weights := make([]float64, count)
	fixed := make([]bool, count)
	fixedValue := make([]int32, count)
	mins := make([]*int32, count)
	maxs := make([]*int32, count)
	for i := 0; i < count; i++ {
		if i < len(cfg.sizes) {
			weights[i] = cfg.sizes[i]
		}
		if cfg.isCollapsed(i) {
			fixed[i] = true
			if m := cfg.minAt(i); m != nil {
				fixedValue[i] = *m
			}
			continue
		}
		mins[i] = cfg.minAt(i)
		maxs[i] = cfg.maxAt(i)
	}

	var collapsedFixedSum int32
	for i := 0; i < count; i++ {
		if fixed[i] {
			collapsedFixedSum += fixedValue[i]
		}
	}
	remaining := available - collapsedFixedSum
	if remaining < 0 {
		remaining = 0
	}
	panelSizes := distributeWeighted(remaining, weights, fixed, fixedValue, mins, maxs)

	tree.Children = make([]*LayoutTree, 0, count*2-1)
	cursor := int32(0)
	synthAllocator := reconcile.InstanceID(0)
	for i, panel := range cfg.panels {
		size := panelSizes[i]
		var px, py, pw, ph int32
		if cfg.horizontal {
			px, py, pw, ph = x+cursor, y, size, h
		} else {
			px, py, pw, ph = x, y+cursor, w, size
		}
		panelAxis := AxisVertical
		if cfg.horizontal {
			panelAxis = AxisHorizontal
		}
		panelTree := arrangeSynthetic(panel, synthAllocator, px, py, pw, ph, panelAxis, cache)
		tree.Children = append(tree.Children, panelTree)
		cursor += size
		if i < count-1 {
			var dx, dy, dw, dh int32
			if cfg.horizontal {
				dx, dy, dw, dh = x+cursor, y, 1, h
			} else {
				dx, dy, dw, dh = x, y+cursor, w, 1
			}
			tree.Children = append(tree.Children, &LayoutTree{Rect: Rect{X: dx, Y: dy, W: dw, H: dh}})
			cursor++
		}
	}
}

// arrangeSynthetic arranges a widget-managed VNode subtree that has no
// corresponding reconciled Instance (e.g. a splitPane's panels),
// assigning every descendant InstanceID 0.
func arrangeSynthetic(n *vnode.Node, id reconcile.InstanceID, x, y, w, h int32, axis Axis, cache *Cache) *LayoutTree {
	if n == nil {
		return nil
	}
	return arrange(buildSyntheticInstance(n, id), x, y, w, h, axis, cache)
}

// buildSyntheticInstance recursively wraps a bare VNode tree in
// Instance nodes (all sharing id) so the ordinary arrange() recursion
// can walk it like any reconciled subtree.
func buildSyntheticInstance(n *vnode.Node, id reconcile.InstanceID) *reconcile.Instance {
	if n == nil {
		return nil
	}
	inst := &reconcile.Instance{ID: id, VNode: n}
	for _, c := range n.Children() {
		inst.Children = append(inst.Children, buildSyntheticInstance(c, id))
	}
	return inst
}
