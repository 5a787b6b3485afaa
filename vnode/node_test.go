package vnode

import "testing"

func TestChildrenByKind(t *testing.T) {
	leaf := Text("hi", Style{})
	row := Row(leaf, Divider())
	if len(row.Children()) != 2 {
		t.Fatalf("row children = %d, want 2", len(row.Children()))
	}

	box := Box(leaf, BoxProps{})
	if len(box.Children()) != 1 {
		t.Fatalf("box children = %d, want 1", len(box.Children()))
	}

	if leaf.Children() != nil {
		t.Fatalf("leaf children should be nil, got %v", leaf.Children())
	}
}

func TestIsLeaf(t *testing.T) {
	if !Text("x", Style{}).IsLeaf() {
		t.Error("text should be a leaf")
	}
	if Row().IsLeaf() {
		t.Error("row should not be a leaf")
	}
}

func TestWithIDAndKeyDoNotMutateOriginal(t *testing.T) {
	base := Text("x", Style{})
	tagged := base.WithKey("a")
	if base.Key != "" {
		t.Error("WithKey mutated the original node")
	}
	if tagged.Key != "a" {
		t.Errorf("Key = %q, want %q", tagged.Key, "a")
	}
}
