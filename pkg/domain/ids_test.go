package domain

import (
	"strings"
	"testing"
)

func TestNewProjectID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "simple", value: "harbor-bridge"},
		{name: "with underscore", value: "site_42"},
		{name: "numeric start", value: "2026-expansion"},
		{name: "whitespace trimmed", value: "  p1  "},
		{name: "empty", value: "", wantErr: true},
		{name: "whitespace only", value: "   ", wantErr: true},
		{name: "leading hyphen", value: "-bad", wantErr: true},
		{name: "spaces inside", value: "harbor bridge", wantErr: true},
		{name: "path traversal", value: "../etc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewProjectID(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProjectID(%q) failed: %v", tt.value, err)
			}
			if id.String() != strings.TrimSpace(tt.value) {
				t.Fatalf("expected %q, got %q", strings.TrimSpace(tt.value), id.String())
			}
		})
	}
}

func TestProjectID_ZeroAndEquals(t *testing.T) {
	var zero ProjectID
	if !zero.IsZero() {
		t.Fatal("expected zero value to report IsZero")
	}

	a := MustProjectID("p1")
	b := MustProjectID("p1")
	c := MustProjectID("p2")

	if a.IsZero() {
		t.Fatal("expected non-zero ID")
	}
	if !a.Equals(b) {
		t.Fatal("expected equal IDs")
	}
	if a.Equals(c) {
		t.Fatal("expected unequal IDs")
	}
}

func TestNewUserID(t *testing.T) {
	if _, err := NewUserID("alice"); err != nil {
		t.Fatalf("NewUserID failed: %v", err)
	}
	if _, err := NewUserID(""); err == nil {
		t.Fatal("expected error for empty user ID")
	}
	if _, err := NewUserID("bad user"); err == nil {
		t.Fatal("expected error for user ID with spaces")
	}

	if !MustUserID("alice").Equals(MustUserID("alice")) {
		t.Fatal("expected equal user IDs")
	}
}

func TestMustProjectID_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid ID")
		}
	}()
	MustProjectID("")
}
