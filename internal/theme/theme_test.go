package theme

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookupCaseInsensitive(t *testing.T) {
	for _, name := range []string{"dracula", "Dracula", "DRACULA", " dracula "} {
		th, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error: %v", name, err)
		}
		if th.Name != "Dracula" {
			t.Errorf("Lookup(%q).Name = %q", name, th.Name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("no-such-theme")
	if !errors.Is(err, ErrUnknown) {
		t.Fatalf("Lookup error = %v, want ErrUnknown", err)
	}
}

func TestNames(t *testing.T) {
	want := []string{"dracula", "monokai", "github", "nord", "solarized-dark", "solarized-light", "one-dark", "gruvbox"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	for _, name := range Names() {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q) error: %v", name, err)
		}
	}
}

func TestColorByRole(t *testing.T) {
	th, err := Lookup("gruvbox")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		role Role
		want string
	}{
		{RoleBackground, "#282828"},
		{RoleForeground, "#ebdbb2"},
		{RoleComment, "#928374"},
		{RoleKeyword, "#fb4934"},
		{RoleType, "#fe8019"},
		{RoleClass, "#8ec07c"},
		{Role(99), "#ebdbb2"},
	}
	for _, tt := range tests {
		if got := th.Color(tt.role).Hex(); got != tt.want {
			t.Errorf("Color(%d) = %s, want %s", tt.role, got, tt.want)
		}
	}
}
