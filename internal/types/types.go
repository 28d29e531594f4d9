package types

import (
	"context"

	"revise/internal/models"
)

// Embedder turns text into a fixed-dimension vector. Implementations log
// failures and return nil instead of an error, so callers only ever have to
// handle presence.
type Embedder interface {
	Embed(ctx context.Context, text string) models.Embedding
}

// Generator produces a model answer for a fully rendered prompt. One call
// per answer submission; the service holds no conversation state.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Retriever ranks source chunks for a query and returns the top k with
// scores. An empty result means retrieval was not possible or nothing
// matched; callers surface that as a notice, not an error.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) []models.ScoredChunk
}
