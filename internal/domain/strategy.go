package domain

// ItemAnalysis es la salida estructurada esperada del clasificador de imágenes.
// Los tres campos son obligatorios; una respuesta parcial es un error.
type ItemAnalysis struct {
	Category string `json:"category"`
	Color    string `json:"color"`
	Desc     string `json:"desc"`
}

// StrategyResult representa la salida estructurada esperada del LLM estilista.
// vibeTitle, moodBoost, psychAnalysis, styleName, keyItem, usedClosetItem y
// hexColors son obligatorios; el resto es best-effort.
type StrategyResult struct {
	VibeTitle         string   `json:"vibeTitle"`
	MoodBoost         string   `json:"moodBoost"`
	PsychAnalysis     string   `json:"psychAnalysis"`
	StyleName         string   `json:"styleName"`
	Silhouette        string   `json:"silhouette"`
	KeyItem           string   `json:"keyItem"`
	UsedClosetItem    bool     `json:"usedClosetItem"`
	HexColors         []string `json:"hexColors"`
	ColorPsychology   string   `json:"colorPsychology"`
	OutfitDesc        string   `json:"outfitDesc"`
	ShopTerms         []string `json:"shopTerms"`
	SuggestedCategory string   `json:"suggestedCategory"`
	SuggestedColor    string   `json:"suggestedColor"`
}

// Look es el resultado completo de una generación diaria: la estrategia,
// la imagen editorial asociada y, si aplica, la coincidencia del closet.
type Look struct {
	Strategy    StrategyResult `json:"strategy"`
	ImageURL    string         `json:"imageUrl"`
	ClosetMatch *ClosetItem    `json:"closetMatch,omitempty"`
	ShopQueries []string       `json:"shopQueries,omitempty"`
}
