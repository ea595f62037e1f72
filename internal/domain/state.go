package domain

// TraitScores resume la personalidad Big Five del usuario.
// Cada campo es la suma de dos respuestas 0-10 del cuestionario (rango 0-20).
// Las claves JSON cortas se mantienen por compatibilidad con blobs ya guardados.
type TraitScores struct {
	Openness          int `json:"O"` // Creatividad vs. Pragmatismo
	Conscientiousness int `json:"C"` // Orden vs. Caos
	Extraversion      int `json:"E"` // Energia social
	Agreeableness     int `json:"A"` // Amabilidad
	Neuroticism       int `json:"N"` // Sensibilidad emocional
}

// Preferences son los ajustes de apariencia y estilo del usuario.
type Preferences struct {
	Name      string `json:"name"`
	Gender    string `json:"gender"` // Womenswear | Menswear | Unisex
	Skin      string `json:"skin"`
	Hair      string `json:"hair"`
	HairStyle string `json:"hairStyle"`
}

// HistoryItem es una entrada del historial de looks generados.
// Solo se crea tras una recomendación exitosa; nunca se muta ni se borra.
type HistoryItem struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Img   string `json:"img"`
}

// AppState es la raíz de agregación del estado de la aplicación.
// CurrentMood es transitorio: nunca se persiste.
type AppState struct {
	CurrentMood *string       `json:"currentMood"`
	UserCloset  []ClosetItem  `json:"userCloset"`
	Preferences Preferences   `json:"preferences"`
	Traits      TraitScores   `json:"traits"`
	History     []HistoryItem `json:"history"`
}

// DefaultState devuelve el estado inicial sobre el que se mezclan
// las claves presentes en el almacenamiento durable.
func DefaultState() AppState {
	return AppState{
		CurrentMood: nil,
		UserCloset:  []ClosetItem{},
		Preferences: Preferences{
			Name:      "User",
			Gender:    "Womenswear",
			Skin:      "Medium",
			Hair:      "Brown",
			HairStyle: "Long Straight",
		},
		Traits:  TraitScores{Openness: 5, Conscientiousness: 5, Extraversion: 5, Agreeableness: 5, Neuroticism: 5},
		History: []HistoryItem{},
	}
}
