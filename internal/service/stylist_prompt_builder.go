package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"mindfit/internal/domain"
)

// StylistPromptBuilder arma el prompt del estilista a partir del estado
// completo y los inputs diarios del usuario.
type StylistPromptBuilder struct{}

// BuildStrategyPrompt embebe preferencias, rasgos, ánimos, contexto, clima
// y el resumen del closet en el prompt que se envía al LLM generador.
func (StylistPromptBuilder) BuildStrategyPrompt(
	state domain.AppState,
	currentMood, goalMood, context, weather string,
	tempC int,
) string {
	var sb strings.Builder

	prefsJSON, _ := json.Marshal(state.Preferences)
	traitsJSON, _ := json.Marshal(state.Traits)

	sb.WriteString(fmt.Sprintf("User: %s.\n", state.Preferences.Name))
	sb.WriteString(fmt.Sprintf("Profile: %s.\n", prefsJSON))
	sb.WriteString(fmt.Sprintf("Traits: %s.\n", traitsJSON))
	sb.WriteString(fmt.Sprintf("Current Mood: %s.\n", currentMood))
	sb.WriteString(fmt.Sprintf("Goal Mood: %s.\n", goalMood))
	sb.WriteString(fmt.Sprintf("Context: %s.\n", context))
	sb.WriteString(fmt.Sprintf("Weather: %s, %d°C.\n\n", weather, tempC))

	sb.WriteString("CLOSET INVENTORY: ")
	sb.WriteString(closetSummary(state.UserCloset))
	sb.WriteString(".\n\n")

	sb.WriteString("Act as a fashion psychologist named \"Psychic\".\n\n")

	sb.WriteString("CRITICAL INSTRUCTION:\n")
	sb.WriteString("1. SCAN the User's Closet Inventory FIRST.\n")
	sb.WriteString("2. Is there an item in the closet that FITS the mood/weather/goal?\n")
	sb.WriteString("3. IF YES: You MUST choose that item as the \"keyItem\". Set \"usedClosetItem\": true.\n")
	sb.WriteString("4. IF NO: Suggest a new item. Set \"usedClosetItem\": false.\n\n")

	sb.WriteString("Strictly analyze Temperature for feasibility: never propose heavy outerwear in high heat.\n\n")

	sb.WriteString("Return ONLY a JSON object with fields:\n")
	sb.WriteString(`{
  "vibeTitle": "short evocative title",
  "moodBoost": "one-line mood boost note",
  "psychAnalysis": "psychological rationale paragraph",
  "styleName": "style archetype name",
  "silhouette": "silhouette description",
  "keyItem": "the key garment",
  "usedClosetItem": false,
  "hexColors": ["#AABBCC"],
  "colorPsychology": "color psychology paragraph",
  "outfitDesc": "full outfit description",
  "shopTerms": ["search term"],
  "suggestedCategory": "Outerwear|Tops|Bottoms|Accessories",
  "suggestedColor": "color name"
}
`)

	return sb.String()
}

// closetSummary renderiza cada prenda como "color desc (categoria)".
func closetSummary(closet []domain.ClosetItem) string {
	if len(closet) == 0 {
		return "No items in closet"
	}
	parts := make([]string, 0, len(closet))
	for _, it := range closet {
		parts = append(parts, it.Summary())
	}
	encoded, _ := json.Marshal(parts)
	return string(encoded)
}
