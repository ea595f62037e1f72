package service

import (
	"strings"
	"testing"

	"mindfit/internal/domain"
)

func TestBuildStrategyPromptEmbedsFullContext(t *testing.T) {
	state := domain.DefaultState()
	state.Preferences.Name = "Rin"
	state.Traits.Openness = 17
	state.UserCloset = []domain.ClosetItem{
		{ID: 1, Category: domain.CategoryTops, Color: "Navy Blue", Desc: "Silk Blouse"},
		{ID: 2, Category: domain.CategoryBottoms, Color: "Black", Desc: "Wide Trousers"},
	}

	prompt := StylistPromptBuilder{}.BuildStrategyPrompt(state, "Anxious", "calm", "Office", "Rainy", 7)

	for _, want := range []string{
		"User: Rin.",
		`"O":17`,
		"Current Mood: Anxious.",
		"Goal Mood: calm.",
		"Context: Office.",
		"Weather: Rainy, 7°C.",
		"Navy Blue Silk Blouse (Tops)",
		"Black Wide Trousers (Bottoms)",
		"SCAN the User's Closet Inventory FIRST",
		"usedClosetItem",
		"hexColors",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q\n%s", want, prompt)
		}
	}
}

func TestBuildStrategyPromptEmptyCloset(t *testing.T) {
	prompt := StylistPromptBuilder{}.BuildStrategyPrompt(domain.DefaultState(), "Calm", "safe", "Home", "Cold", -3)
	if !strings.Contains(prompt, "No items in closet") {
		t.Fatalf("empty closet must be stated explicitly\n%s", prompt)
	}
}
