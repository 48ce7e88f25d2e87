package theme

import (
	"testing"

	"github.com/yildizm/lrview/internal/classifier"
)

func TestSetThemeByName(t *testing.T) {
	defer SetThemeByName("default")

	for _, name := range GetAvailableThemes() {
		if !SetThemeByName(name) {
			t.Errorf("SetThemeByName(%q) = false", name)
		}
		if GetTheme().Name != name {
			t.Errorf("active theme = %q, want %q", GetTheme().Name, name)
		}
	}
	if SetThemeByName("neon") {
		t.Error("unknown theme should be rejected")
	}
}

func TestCellStylesCoverEveryCategory(t *testing.T) {
	styles := GetStyles()
	for _, c := range classifier.Categories {
		if _, ok := styles.Cells[c]; !ok {
			t.Errorf("missing cell style for %s", c)
		}
	}
}

func TestColorDisabled(t *testing.T) {
	defer SetColorDisabled(false)
	SetColorDisabled(true)
	if got := GetStyles().Cell(classifier.Conflict, "s7"); got != "s7" {
		t.Errorf("Cell() with colors disabled = %q, want plain text", got)
	}
}
