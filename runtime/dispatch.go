package runtime

import (
	"github.com/rezi-tui/rezi/focus"
	"github.com/rezi-tui/rezi/layout"
	"github.com/rezi-tui/rezi/reconcile"
	"github.com/rezi-tui/rezi/text"
	"github.com/rezi-tui/rezi/vnode"
)

func ptrInt(i int) *int             { return &i }
func strPtrLocal(s string) *string { return &s }

// Widget-local routing state is read from conventional Props keys, the
// same convention render.renderWidget uses for "text"/"style"/"cursor":
// a host builds a tree/table/dropdown/dialog/input widget's VNode with
// its current local state under these keys, and RouteResult is handed
// back to the host through an "onRoute" callback of type
// func(focus.RouteResult), so the host can fold it into the state it
// passes into next frame's root(State) call.

func findInstance(inst *reconcile.Instance, id string) *reconcile.Instance {
	if inst == nil || id == "" {
		return nil
	}
	if inst.VNode != nil && inst.VNode.ID == id {
		return inst
	}
	for _, c := range inst.Children {
		if found := findInstance(c, id); found != nil {
			return found
		}
	}
	return nil
}

func treeStateFromProps(p map[string]interface{}) (focus.TreeState, bool) {
	rows, ok := p["rows"].([]focus.TreeRow)
	if !ok {
		return focus.TreeState{}, false
	}
	focusedKey, _ := p["focusedKey"].(string)
	expanded, _ := p["expanded"].(map[string]bool)
	scrollTop, _ := p["scrollTop"].(int)
	viewportRows, _ := p["viewportRows"].(int)
	return focus.TreeState{
		Rows:         rows,
		FocusedKey:   focusedKey,
		Expanded:     expanded,
		ScrollTop:    scrollTop,
		ViewportRows: viewportRows,
	}, true
}

func tableStateFromProps(p map[string]interface{}) (focus.TableState, bool) {
	rowKeys, ok := p["rowKeys"].([]string)
	if !ok {
		return focus.TableState{}, false
	}
	focusedRowKey, _ := p["focusedKey"].(string)
	selection, _ := p["selection"].([]string)
	scrollTop, _ := p["scrollTop"].(int)
	viewportRows, _ := p["viewportRows"].(int)
	multiSelect, _ := p["multiSelect"].(bool)
	return focus.TableState{
		RowKeys:       rowKeys,
		FocusedRowKey: focusedRowKey,
		Selection:     selection,
		ScrollTop:     scrollTop,
		ViewportRows:  viewportRows,
		MultiSelect:   multiSelect,
	}, true
}

func dropdownStateFromProps(p map[string]interface{}) (focus.DropdownState, bool) {
	optionKeys, ok := p["optionKeys"].([]string)
	if !ok {
		return focus.DropdownState{}, false
	}
	focusedKey, _ := p["focusedKey"].(string)
	selectedKey, _ := p["selectedKey"].(string)
	open, _ := p["open"].(bool)
	return focus.DropdownState{
		OptionKeys:  optionKeys,
		FocusedKey:  focusedKey,
		SelectedKey: selectedKey,
		Open:        open,
	}, true
}

func dialogStateFromProps(p map[string]interface{}) (focus.DialogState, bool) {
	focusableKeys, ok := p["focusableKeys"].([]string)
	if !ok {
		return focus.DialogState{}, false
	}
	focusedKey, _ := p["focusedKey"].(string)
	return focus.DialogState{FocusableKeys: focusableKeys, FocusedKey: focusedKey}, true
}

func inputStateFromProps(p map[string]interface{}) (focus.InputState, bool) {
	value, ok := p["value"].(string)
	if !ok {
		return focus.InputState{}, false
	}
	cursorPos, _ := p["cursorPos"].(int)
	return focus.InputState{Value: value, CursorPos: cursorPos}, true
}

// routeFocusedWidget dispatches key to the focused instance's
// widget-specific routing function (spec.md §4.8), keyed on its
// WidgetKind. It reports false in its second result when the focused
// instance isn't a routable widget or lacks the Props its State needs,
// so callers can fall through to global/chord routing.
func routeFocusedWidget(inst *reconcile.Instance, key focus.ParsedKey) (focus.RouteResult, map[string]interface{}, bool) {
	if inst == nil || inst.VNode == nil || inst.VNode.Widget == nil {
		return focus.RouteResult{}, nil, false
	}
	wp := inst.VNode.Widget
	switch wp.Kind {
	case vnode.WidgetTree:
		if s, ok := treeStateFromProps(wp.Props); ok {
			return focus.RouteTree(s, key), wp.Props, true
		}
	case vnode.WidgetTable:
		if s, ok := tableStateFromProps(wp.Props); ok {
			return focus.RouteTable(s, key), wp.Props, true
		}
	case vnode.WidgetDropdown:
		if s, ok := dropdownStateFromProps(wp.Props); ok {
			return focus.RouteDropdown(s, key), wp.Props, true
		}
	case vnode.WidgetModal:
		if s, ok := dialogStateFromProps(wp.Props); ok {
			return focus.RouteDialog(s, key), wp.Props, true
		}
	case vnode.WidgetInput:
		if s, ok := inputStateFromProps(wp.Props); ok {
			return focus.RouteInput(s, key), wp.Props, true
		}
	}
	return focus.RouteResult{}, nil, false
}

// deliverRouteResult wraps handing res to a widget's "onRoute" Props
// callback as a focus.Effect, so a panicking/erroring callback is
// recovered and swallowed by focus.RunBatch exactly like a chord
// handler's (spec.md §7 class 3).
func deliverRouteResult(props map[string]interface{}, res focus.RouteResult) focus.Effect {
	cb, ok := props["onRoute"].(func(focus.RouteResult))
	if !ok {
		return nil
	}
	return func() error {
		cb(res)
		return nil
	}
}

// insertTextIntoFocusedInput splices typed text (a decoded codepoint,
// or a paste's decoded bytes) into a focused WidgetInput's value at its
// cursor, which text.NormalizeCursor first snaps to a cluster boundary
// so insertion never lands inside one.
func insertTextIntoFocusedInput(inst *reconcile.Instance, inserted string) (focus.RouteResult, map[string]interface{}, bool) {
	if inst == nil || inst.VNode == nil || inst.VNode.Widget == nil || inst.VNode.Widget.Kind != vnode.WidgetInput {
		return focus.RouteResult{}, nil, false
	}
	s, ok := inputStateFromProps(inst.VNode.Widget.Props)
	if !ok || inserted == "" {
		return focus.RouteResult{}, nil, false
	}
	pos := text.NormalizeCursor(s.Value, s.CursorPos)
	next := s.Value[:pos] + inserted + s.Value[pos:]
	res := focus.RouteResult{
		NextSelection: []string{next},
		NextScrollTop: ptrInt(pos + len(inserted)),
		Consumed:      true,
	}
	return res, inst.VNode.Widget.Props, true
}

// hitTestWidgetID returns the ID of the topmost widget under (x, y) in
// tree, or "" if the point misses every node or lands on an unidentified
// one.
func hitTestWidgetID(tree *layout.LayoutTree, x, y int32) string {
	hit := layout.HitTest(tree, x, y)
	if hit == nil || hit.VNode == nil {
		return ""
	}
	return hit.VNode.ID
}
