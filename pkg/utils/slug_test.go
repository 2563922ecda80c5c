package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tbilisi", "tbilisi"},
		{"Tbilisi Region", "tbilisi-region"},
		{"  Hello,  World!  ", "hello-world"},
		{"iPhone 13 Pro -- 256GB", "iphone-13-pro-256gb"},
		{"---", ""},
		{"", ""},
		{"ALL CAPS", "all-caps"},
		{"a__b..c", "a-b-c"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugOrFallback(t *testing.T) {
	got := SlugOr("!!!", func() string { return "fallback" })
	if got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := SlugOr("Some Title", func() string { return "fallback" }); got != "some-title" {
		t.Fatalf("expected derived slug, got %q", got)
	}
}

func TestNewIDShape(t *testing.T) {
	a, b := NewID(), NewID()
	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("expected 32-char ids, got %d and %d", len(a), len(b))
	}
	if a == b {
		t.Fatal("two ids should not collide")
	}
}
