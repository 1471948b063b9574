package uuid

import (
	"strings"
	"testing"
	"time"
)

func TestNewGeneratesValidUUIDv7(t *testing.T) {
	id := New()

	if !IsValid(id) {
		t.Errorf("generated id %q is not a valid UUID", id)
	}
	if id[14] != '7' {
		t.Errorf("expected version 7, got %q in %s", id[14], id)
	}
	switch id[19] {
	case '8', '9', 'a', 'b':
	default:
		t.Errorf("expected RFC 4122 variant, got %q in %s", id[19], id)
	}
}

func TestNewIsTimeOrdered(t *testing.T) {
	first := New()
	time.Sleep(2 * time.Millisecond)
	second := New()

	if !(first < second) {
		t.Errorf("expected %s < %s", first, second)
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestDerive(t *testing.T) {
	parent := New()

	got := Derive(parent, 2)
	if got != parent+"-2" {
		t.Errorf("Derive(%s, 2) = %s", parent, got)
	}
	if !strings.HasPrefix(got, parent) {
		t.Errorf("derived id %s does not start with parent %s", got, parent)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("0190a8b0-47e8-7cb3-94e1-5fd3e447c123") {
		t.Error("expected well-formed UUID to be valid")
	}
	if IsValid("not-a-uuid") {
		t.Error("expected malformed string to be invalid")
	}
	if IsValid("") {
		t.Error("expected empty string to be invalid")
	}
}
