package domain

import "testing"

func TestCategoryPlace(t *testing.T) {
	root := &Category{ID: "root"}
	root.Place(nil)
	if root.Level != 0 || len(root.Path) != 0 || root.ParentID != nil {
		t.Fatalf("root placement wrong: level=%d path=%v", root.Level, root.Path)
	}

	child := &Category{ID: "child"}
	child.Place(root)
	if child.Level != 1 {
		t.Fatalf("child level = %d, want 1", child.Level)
	}
	if len(child.Path) != 1 || child.Path[0] != "root" {
		t.Fatalf("child path = %v, want [root]", child.Path)
	}

	grand := &Category{ID: "grand"}
	grand.Place(child)
	if grand.Level != child.Level+1 {
		t.Fatalf("level invariant broken: %d != %d+1", grand.Level, child.Level)
	}
	wantPath := []string{"root", "child"}
	if len(grand.Path) != 2 || grand.Path[0] != wantPath[0] || grand.Path[1] != wantPath[1] {
		t.Fatalf("grandchild path = %v, want %v", grand.Path, wantPath)
	}

	// Re-rooting clears the derived placement.
	grand.Place(nil)
	if grand.Level != 0 || len(grand.Path) != 0 {
		t.Fatalf("re-rooted placement wrong: level=%d path=%v", grand.Level, grand.Path)
	}
}

func TestCategoryPlaceDoesNotAliasParentPath(t *testing.T) {
	parent := &Category{ID: "p", Path: []string{"r"}, Level: 1}
	child := &Category{ID: "c"}
	child.Place(parent)
	child.Path[0] = "mutated"
	if parent.Path[0] != "r" {
		t.Fatal("child placement must copy the parent path")
	}
}

func TestHasAncestor(t *testing.T) {
	c := &Category{ID: "x", Path: []string{"a", "b"}}
	if !c.HasAncestor("a") || !c.HasAncestor("b") {
		t.Fatal("expected ancestors a and b")
	}
	if c.HasAncestor("x") || c.HasAncestor("z") {
		t.Fatal("unexpected ancestor match")
	}
}
