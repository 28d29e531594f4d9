package grader

import "revise/internal/models"

// Grading thresholds on answer/model-answer cosine similarity. Fixed at
// build time; named here so they can be tuned without touching Grade.
const (
	CorrectThreshold = 0.85
	PartialThreshold = 0.6
)

// Grade maps a similarity score to a feedback band. Both bounds are
// exclusive: exactly 0.85 is Partial and exactly 0.6 is Incorrect. An
// undefined similarity grades as Unscored.
func Grade(sim models.Similarity) models.FeedbackBand {
	if !sim.Defined {
		return models.Unscored
	}
	switch {
	case sim.Value > CorrectThreshold:
		return models.Correct
	case sim.Value > PartialThreshold:
		return models.Partial
	default:
		return models.Incorrect
	}
}
