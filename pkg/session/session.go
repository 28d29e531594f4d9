package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"revise/internal/models"
	"revise/internal/types"
	"revise/pkg/grader"
	"revise/pkg/prompt"
	"revise/pkg/similarity"
)

// ErrNoRelevantChunks reports that retrieval produced nothing for the
// current question: either the query embedding failed or no chunk had a
// usable embedding. Surfaced to the user as a notice, not an error page.
var ErrNoRelevantChunks = errors.New("no relevant chunks found")

// SessionConfig represents the configuration for one revision session.
type SessionConfig struct {
	Questions []string
	TopK      int
	Pick      func(n int) int // index choice; defaults to rand.Intn
	Logger    *log.Logger
}

// Session ties the pipeline together: it owns the question bank, the
// per-session conversation history, and one submission flow from retrieval
// through grading. History is session-scoped and never shared.
type Session struct {
	config    SessionConfig
	retriever types.Retriever
	generator types.Generator
	embedder  types.Embedder
	current   string
	history   []models.ConversationTurn
}

func NewWithConfig(config SessionConfig, r types.Retriever, g types.Generator, e types.Embedder) *Session {
	if len(config.Questions) == 0 {
		config.Questions = DefaultQuestions
	}
	if config.TopK == 0 {
		config.TopK = 3
	}
	if config.Pick == nil {
		config.Pick = rand.Intn
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	s := &Session{
		config:    config,
		retriever: r,
		generator: g,
		embedder:  e,
	}
	s.NextQuestion()
	return s
}

// Question returns the question currently awaiting an answer.
func (s *Session) Question() string { return s.current }

// NextQuestion draws a new question from the bank, independent of previous
// draws; repeats are allowed.
func (s *Session) NextQuestion() string {
	s.current = s.config.Questions[s.config.Pick(len(s.config.Questions))]
	return s.current
}

// History returns all graded turns in submission order.
func (s *Session) History() []models.ConversationTurn { return s.history }

// Submit runs one answer through retrieve, generate, score, and grade. On
// success the returned turn has been appended to the history. Retrieval
// coming up empty returns ErrNoRelevantChunks and a generation failure
// returns a wrapped error; neither touches the history.
func (s *Session) Submit(ctx context.Context, answer string) (models.ConversationTurn, error) {
	if strings.TrimSpace(answer) == "" {
		return models.ConversationTurn{}, errors.New("answer is empty")
	}
	question := s.current

	results := s.retriever.Retrieve(ctx, question, s.config.TopK)
	if len(results) == 0 {
		s.config.Logger.Printf("Question: %s | User Answer: %s | no relevant chunks found", question, answer)
		return models.ConversationTurn{}, ErrNoRelevantChunks
	}

	modelAnswer, err := s.generator.Generate(ctx, prompt.Build(question, results))
	if err != nil {
		s.config.Logger.Printf("Question: %s | generation failed: %v", question, err)
		return models.ConversationTurn{}, fmt.Errorf("generating answer: %w", err)
	}

	turn := models.ConversationTurn{
		Question:    question,
		UserAnswer:  answer,
		ModelAnswer: modelAnswer,
		Similarity:  s.score(ctx, answer, modelAnswer),
	}
	turn.Feedback = grader.Grade(turn.Similarity)
	s.history = append(s.history, turn)

	s.config.Logger.Printf("Question: %s | User Answer: %s | Model Answer: %s | Similarity: %s",
		question, answer, modelAnswer, turn.Similarity)
	return turn, nil
}

// score embeds both answers and computes their cosine similarity. The result
// is undefined when either embedding is absent or degenerate.
func (s *Session) score(ctx context.Context, userAnswer, modelAnswer string) models.Similarity {
	userEmb := s.embedder.Embed(ctx, userAnswer)
	modelEmb := s.embedder.Embed(ctx, modelAnswer)
	if userEmb == nil || modelEmb == nil {
		return models.Similarity{}
	}
	value, ok := similarity.Cosine(userEmb, modelEmb)
	if !ok {
		return models.Similarity{}
	}
	return models.Similarity{Value: value, Defined: true}
}
