package schedule

import (
	"math/rand"
)

// QuestionBank preguntas enlatadas con las que arranca el panel de
// preparación de entrevista. La curación (orden, quitadas) es contenido
// presentacional: no afecta al registro de la entrevista.
var QuestionBank = []string{
	"Tell me about yourself and your background.",
	"Why are you interested in this position?",
	"Describe a challenging project you worked on recently.",
	"How do you handle conflicting priorities under a deadline?",
	"Tell me about a time you disagreed with a teammate.",
	"What do you consider your greatest professional achievement?",
	"Where do you see yourself in five years?",
	"Why do you want to leave your current role?",
	"What questions do you have for us?",
}

// DefaultQuestions copia del banco para iniciar una sesión de curación
func DefaultQuestions() []string {
	questions := make([]string, len(QuestionBank))
	copy(questions, QuestionBank)
	return questions
}

// Shuffle retorna una permutación uniforme de la lista (Fisher–Yates)
func Shuffle(questions []string) []string {
	shuffled := make([]string, len(questions))
	copy(shuffled, questions)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// RemoveQuestion quita la pregunta en el índice dado preservando el
// orden; índices fuera de rango dejan la lista intacta.
func RemoveQuestion(questions []string, index int) []string {
	if index < 0 || index >= len(questions) {
		return questions
	}
	trimmed := make([]string, 0, len(questions)-1)
	trimmed = append(trimmed, questions[:index]...)
	return append(trimmed, questions[index+1:]...)
}
