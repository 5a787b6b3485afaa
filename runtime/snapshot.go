package runtime

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/rezi-tui/rezi/focus"
	"github.com/rezi-tui/rezi/vnode"
)

// Snapshot is a debug/test dump of one frame's VNode tree and focus
// state, CBOR-encoded for golden-file fixtures and cross-session
// debugging. It is not a wire format: ZRDL and ZREV stay byte-exact
// fixed layouts per spec.md §3/§4 and are never routed through this
// type.
type Snapshot struct {
	Tree  map[string]interface{} `cbor:"tree"`
	Focus SnapshotFocus          `cbor:"focus"`
}

// SnapshotFocus is the focus.State fields worth diffing in a fixture;
// EnabledByID is flattened to a sorted-key-free map since CBOR already
// preserves map ordering poorly and the test assertions that consume
// this only ever compare it by key.
type SnapshotFocus struct {
	FocusList      []string        `cbor:"focus_list"`
	FocusedID      string          `cbor:"focused_id"`
	PendingFocusID string          `cbor:"pending_focus_id"`
	EnabledByID    map[string]bool `cbor:"enabled_by_id"`
}

// TakeSnapshot builds a Snapshot from a rendered tree and the focus
// state produced for it.
func TakeSnapshot(root *vnode.Node, state focus.State) Snapshot {
	return Snapshot{
		Tree: encodeNode(root),
		Focus: SnapshotFocus{
			FocusList:      append([]string{}, state.FocusList...),
			FocusedID:      state.FocusedID,
			PendingFocusID: state.PendingFocusID,
			EnabledByID:    state.EnabledByID,
		},
	}
}

// Marshal encodes s to CBOR bytes.
func (s Snapshot) Marshal() ([]byte, error) {
	b, err := cbor.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("cbor encode: %w", err)
	}
	return b, nil
}

// UnmarshalSnapshot decodes CBOR bytes produced by Marshal.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("cbor decode: %w", err)
	}
	return s, nil
}

// encodeNode converts a Node to a generic map suitable for CBOR
// encoding, mirroring the teacher's encodeVNode.
func encodeNode(n *vnode.Node) map[string]interface{} {
	if n == nil {
		return nil
	}
	m := map[string]interface{}{
		"kind": uint8(n.Kind),
		"id":   n.ID,
		"key":  n.Key,
	}
	if n.Widget != nil {
		m["widget_kind"] = uint8(n.Widget.Kind)
		if len(n.Widget.Props) > 0 {
			m["props"] = n.Widget.Props
		}
	}
	if n.Text != nil {
		m["text"] = *n.Text
	}
	children := n.Children()
	if len(children) > 0 {
		encoded := make([]map[string]interface{}, len(children))
		for i, c := range children {
			encoded[i] = encodeNode(c)
		}
		m["children"] = encoded
	}
	return m
}
