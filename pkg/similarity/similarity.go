package similarity

import "math"

// Cosine returns the cosine similarity of a and b in [-1, 1]. The second
// return is false when the score is undefined: either vector is empty or has
// zero norm. This is a deliberate convention, not an error; an undefined
// score never enters a ranking and never crosses a grading threshold.
func Cosine(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
