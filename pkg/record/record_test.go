package record

import (
	"reflect"
	"testing"
	"time"
)

func TestNewIDIsMillis(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	if got, want := NewID(now), "1740823200000"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestStringFormatsValues(t *testing.T) {
	r := Record{
		"Client Name": "Acme",
		"Amount":      1200.0,
		"Rate":        12.5,
		"Note":        nil,
	}
	cases := map[string]string{
		"Client Name": "Acme",
		"Amount":      "1200",
		"Rate":        "12.5",
		"Note":        "",
		"absent":      "",
	}
	for field, want := range cases {
		if got := r.String(field); got != want {
			t.Fatalf("%s: expected %q, got %q", field, want, got)
		}
	}
}

func TestIDDefaultsField(t *testing.T) {
	r := Record{"id": "42", "Client Id": "c-1"}
	if r.ID("") != "42" {
		t.Fatalf("expected default id field")
	}
	if r.ID("Client Id") != "c-1" {
		t.Fatalf("expected named id field")
	}
}

func TestCloneDoesNotShare(t *testing.T) {
	r := Record{"id": "1", "name": "a"}
	c := r.Clone()
	c["name"] = "b"
	if r["name"] != "a" {
		t.Fatalf("clone shares map with original")
	}
	w := r.With("name", "z")
	if r["name"] != "a" || w["name"] != "z" {
		t.Fatalf("With mutated the original")
	}
}

func TestMissing(t *testing.T) {
	r := Record{"Client Name": "Acme", "Purpose": "  ", "Contact No": nil}
	got := r.Missing("Client Name", "Purpose", "Contact No", "Start Date")
	want := []string{"Purpose", "Contact No", "Start Date"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLookup(t *testing.T) {
	raw := []byte(`{"Client Name":"Acme","meta":{"tier":"gold"},"Amount":12}`)
	if v, ok := Lookup(raw, "Client Name"); !ok || v != "Acme" {
		t.Fatalf("unexpected %q %v", v, ok)
	}
	if v, ok := Lookup(raw, "meta.tier"); !ok || v != "gold" {
		t.Fatalf("unexpected %q %v", v, ok)
	}
	if _, ok := Lookup(raw, "missing"); ok {
		t.Fatalf("expected missing path")
	}
}
