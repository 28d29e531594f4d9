package session_test

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revise/internal/models"
	"revise/pkg/session"
)

type stubRetriever struct {
	results []models.ScoredChunk
}

func (s *stubRetriever) Retrieve(context.Context, string, int) []models.ScoredChunk {
	return s.results
}

type stubGenerator struct {
	answer string
	err    error
}

func (s *stubGenerator) Generate(context.Context, string) (string, error) {
	return s.answer, s.err
}

type stubEmbedder struct {
	vectors map[string]models.Embedding
}

func (s *stubEmbedder) Embed(_ context.Context, text string) models.Embedding {
	return s.vectors[text]
}

func discard() *log.Logger { return log.New(io.Discard, "", 0) }

func fixedPick(i int) func(int) int { return func(int) int { return i } }

var someChunks = []models.ScoredChunk{
	{Chunk: models.Chunk{Index: 0, Text: "Television is mass media."}, Score: 0.9},
}

func TestSubmit_GradedTurnAppended(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string]models.Embedding{
		"my answer":    {1, 0},
		"model answer": {0.9, 0.1},
	}}

	s := session.NewWithConfig(session.SessionConfig{
		Questions: []string{"What is media?"},
		Pick:      fixedPick(0),
		Logger:    discard(),
	}, &stubRetriever{results: someChunks}, &stubGenerator{answer: "model answer"}, emb)

	turn, err := s.Submit(context.Background(), "my answer")
	require.NoError(t, err)

	assert.Equal(t, "What is media?", turn.Question)
	assert.Equal(t, "model answer", turn.ModelAnswer)
	require.True(t, turn.Similarity.Defined)
	assert.Greater(t, turn.Similarity.Value, 0.85)
	assert.Equal(t, models.Correct, turn.Feedback)

	require.Len(t, s.History(), 1)
	assert.Equal(t, turn, s.History()[0])
}

func TestSubmit_EmptyAnswerRejected(t *testing.T) {
	s := session.NewWithConfig(session.SessionConfig{Logger: discard()},
		&stubRetriever{results: someChunks}, &stubGenerator{answer: "x"}, &stubEmbedder{})

	_, err := s.Submit(context.Background(), "   ")
	assert.Error(t, err)
	assert.Empty(t, s.History())
}

func TestSubmit_NoRelevantChunks(t *testing.T) {
	s := session.NewWithConfig(session.SessionConfig{Logger: discard()},
		&stubRetriever{}, &stubGenerator{answer: "unused"}, &stubEmbedder{})

	_, err := s.Submit(context.Background(), "my answer")
	assert.ErrorIs(t, err, session.ErrNoRelevantChunks)
	assert.Empty(t, s.History())
}

func TestSubmit_GenerationFailure(t *testing.T) {
	s := session.NewWithConfig(session.SessionConfig{Logger: discard()},
		&stubRetriever{results: someChunks},
		&stubGenerator{err: errors.New("service unavailable")}, &stubEmbedder{})

	_, err := s.Submit(context.Background(), "my answer")
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNoRelevantChunks)
	assert.Empty(t, s.History())
}

func TestSubmit_UnscoredWhenEmbeddingFails(t *testing.T) {
	// The model answer has no stub vector, so scoring cannot happen; the
	// turn is still recorded, just unscored.
	emb := &stubEmbedder{vectors: map[string]models.Embedding{
		"my answer": {1, 0},
	}}

	s := session.NewWithConfig(session.SessionConfig{Logger: discard()},
		&stubRetriever{results: someChunks}, &stubGenerator{answer: "model answer"}, emb)

	turn, err := s.Submit(context.Background(), "my answer")
	require.NoError(t, err)
	assert.False(t, turn.Similarity.Defined)
	assert.Equal(t, models.Unscored, turn.Feedback)
	assert.Len(t, s.History(), 1)
}

func TestSubmit_HistoryKeepsSubmissionOrder(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string]models.Embedding{
		"first":        {1, 0},
		"second":       {0, 1},
		"model answer": {1, 1},
	}}

	s := session.NewWithConfig(session.SessionConfig{
		Questions: []string{"Q1", "Q2"},
		Pick:      fixedPick(0),
		Logger:    discard(),
	}, &stubRetriever{results: someChunks}, &stubGenerator{answer: "model answer"}, emb)

	_, err := s.Submit(context.Background(), "first")
	require.NoError(t, err)
	s.NextQuestion()
	_, err = s.Submit(context.Background(), "second")
	require.NoError(t, err)

	require.Len(t, s.History(), 2)
	assert.Equal(t, "first", s.History()[0].UserAnswer)
	assert.Equal(t, "second", s.History()[1].UserAnswer)
}

func TestNextQuestion_UsesInjectedPick(t *testing.T) {
	picks := []int{2, 0, 2}
	i := 0
	pick := func(n int) int {
		require.Equal(t, 3, n)
		v := picks[i%len(picks)]
		i++
		return v
	}

	s := session.NewWithConfig(session.SessionConfig{
		Questions: []string{"A", "B", "C"},
		Pick:      pick,
		Logger:    discard(),
	}, &stubRetriever{}, &stubGenerator{}, &stubEmbedder{})

	assert.Equal(t, "C", s.Question())
	assert.Equal(t, "A", s.NextQuestion())
	assert.Equal(t, "C", s.NextQuestion()) // repeats allowed
}
