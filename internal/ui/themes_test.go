package ui

import (
	"testing"
)

func TestInitTheme(t *testing.T) {
	saved := GetCurrentTheme()
	defer SetCurrentTheme(saved)

	InitTheme(true)
	if ColorsEnabled() || ColorRed() != "" || ColorReset() != "" {
		t.Error("InitTheme(true) should disable colors")
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if ColorsEnabled() {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestSetTheme(t *testing.T) {
	saved := GetCurrentTheme()
	defer SetCurrentTheme(saved)

	tests := map[string]string{"dark": "dark", "light": "light", "none": "none", "neon": "dark"}
	for name, want := range tests {
		SetTheme(name)
		if got := GetCurrentTheme().Name; got != want {
			t.Errorf("SetTheme(%q) -> %q, want %q", name, got, want)
		}
	}
}

func TestHeading_NoColor(t *testing.T) {
	saved := GetCurrentTheme()
	defer SetCurrentTheme(saved)

	SetCurrentTheme(NoColorTheme)
	if got := Heading("--- Result ---"); got != "--- Result ---" {
		t.Errorf("Heading() = %q, want plain text", got)
	}
}
