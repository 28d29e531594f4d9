package models

import "fmt"

// Chunk is a bounded contiguous word-sequence extracted from the source text.
// Chunks are created once when a source is loaded and never mutated. Index
// reflects original document order and carries no ranking meaning.
type Chunk struct {
	Index    int
	Text     string
	SourceID string
}

// Embedding is a fixed-length vector representing text meaning. A nil slice
// means the embedding call failed; absence propagates and is never treated
// as a zero vector.
type Embedding = []float32

// ScoredChunk pairs a chunk with its cosine similarity against a query.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Similarity carries a cosine score that may be undefined: either vector was
// absent or had zero norm. An undefined similarity never crosses a grading
// threshold.
type Similarity struct {
	Value   float64
	Defined bool
}

func (s Similarity) String() string {
	if !s.Defined {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", s.Value)
}

// FeedbackBand is the discrete grading outcome for an answer.
type FeedbackBand int

const (
	Unscored FeedbackBand = iota
	Incorrect
	Partial
	Correct
)

func (b FeedbackBand) String() string {
	switch b {
	case Correct:
		return "Correct!"
	case Partial:
		return "Partially correct."
	case Incorrect:
		return "Incorrect or unrelated."
	default:
		return "Could not compute feedback."
	}
}

// ConversationTurn records one graded answer submission. Turns are appended
// to the session history in submission order and never mutated or removed.
type ConversationTurn struct {
	Question    string
	UserAnswer  string
	ModelAnswer string
	Feedback    FeedbackBand
	Similarity  Similarity
}
