package service

import "mindfit/internal/domain"

// QuestionnaireScorer mapea las diez respuestas Likert fijas a los cinco
// rasgos agregados. Función pura: el llamador garantiza diez respuestas en 0-10.
type QuestionnaireScorer struct{}

// Question es un enunciado del cuestionario con su código de rasgo.
type Question struct {
	Trait string `json:"trait"` // O | C | E | A | N
	Text  string `json:"text"`
}

// ResponseCount es la cantidad fija de respuestas del cuestionario.
const ResponseCount = 10

// Questions devuelve el cuestionario estático BFI (dos enunciados por rasgo).
func (QuestionnaireScorer) Questions() []Question {
	return []Question{
		{Trait: "E", Text: "1. I see myself as outgoing, sociable."},
		{Trait: "E", Text: "2. I see myself as talkative."},
		{Trait: "A", Text: "3. I see myself as helpful and unselfish."},
		{Trait: "A", Text: "4. I see myself as trusting and forgiving."},
		{Trait: "C", Text: "5. I see myself as thorough and reliable."},
		{Trait: "C", Text: "6. I see myself as organized."},
		{Trait: "N", Text: "7. I see myself as anxious or easily upset."},
		{Trait: "N", Text: "8. I see myself as moody."},
		{Trait: "O", Text: "9. I see myself as imaginative and original."},
		{Trait: "O", Text: "10. I see myself as artistic."},
	}
}

// Score suma cada par de respuestas en el rasgo que le corresponde.
// Cada campo resultante queda en [0,20].
func (s QuestionnaireScorer) Score(responses []int) domain.TraitScores {
	var traits domain.TraitScores
	questions := s.Questions()
	for i, q := range questions {
		if i >= len(responses) {
			break
		}
		switch q.Trait {
		case "O":
			traits.Openness += responses[i]
		case "C":
			traits.Conscientiousness += responses[i]
		case "E":
			traits.Extraversion += responses[i]
		case "A":
			traits.Agreeableness += responses[i]
		case "N":
			traits.Neuroticism += responses[i]
		}
	}
	return traits
}
