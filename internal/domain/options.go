package domain

// Vocabularios fijos que los clientes renderizan como selects.

// Moods son los estados de ánimo seleccionables en la vista diaria.
func Moods() []string {
	return []string{"Anxious", "Tired", "Calm", "Confident", "Gloomy", "Excited"}
}

// GoalMoods son los estados emocionales objetivo de la recomendación.
func GoalMoods() []string {
	return []string{"calm", "confident", "creative", "social", "safe"}
}

// Contexts son los contextos de uso del outfit.
func Contexts() []string {
	return []string{"University", "Office", "Date", "Casual", "Home"}
}

// Weathers son las condiciones climáticas seleccionables.
func Weathers() []string {
	return []string{"Sunny", "Rainy", "Cold", "Mild"}
}
