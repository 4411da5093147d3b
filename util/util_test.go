package util

import "testing"

func TestPtr(t *testing.T) {
	p := Ptr(42)
	if p == nil || *p != 42 {
		t.Fatalf("expected pointer to 42, got %v", p)
	}
	s := Ptr("scope")
	if *s != "scope" {
		t.Errorf("expected 'scope', got %q", *s)
	}
}

func TestContains(t *testing.T) {
	slice := []string{"graph", "cached", "unique"}
	if !Contains(slice, "cached") {
		t.Error("expected slice to contain 'cached'")
	}
	if Contains(slice, "shared") {
		t.Error("expected slice to not contain 'shared'")
	}
	if Contains([]int(nil), 1) {
		t.Error("expected empty slice to contain nothing")
	}
}

func TestUnique(t *testing.T) {
	items := []string{"a", "b", "a", "c", "b"}
	got := Unique(items)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("unexpected unique result: %v", got)
	}
	if got := Unique([]int(nil)); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "second", "third"); got != "second" {
		t.Errorf("expected 'second', got %q", got)
	}
	if got := Coalesce(0, 0, 7); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("expected zero value, got %q", got)
	}
}
