package retriever

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/time/rate"

	"revise/internal/models"
	"revise/internal/types"
	"revise/pkg/chunker"
	"revise/pkg/similarity"
)

// RetrieverConfig represents the configuration for building a file-backed
// retriever.
type RetrieverConfig struct {
	ChunkSize  int
	Overlap    int
	RateLimit  float64   // embedding requests per second during load
	OnProgress func(int) // called after each chunk embedding attempt
	Logger     *log.Logger
}

// Retriever holds the chunk set of one source text and its embeddings, built
// once at construction. The two slices are parallel; a nil embedding marks a
// chunk whose embedding call failed, which keeps the chunk positionally in
// the set but excludes it from ranking. Safe for shared read-only use once
// built.
type Retriever struct {
	sourceID   string
	chunks     []models.Chunk
	embeddings []models.Embedding
	embedder   types.Embedder
	logger     *log.Logger
}

// NewFromFile reads the source text, chunks it, and embeds every chunk
// sequentially. The file being unreadable is fatal; individual embedding
// failures are not.
func NewFromFile(ctx context.Context, path string, embedder types.Embedder, config RetrieverConfig) (*Retriever, error) {
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source text not found: %w", err)
	}

	ch, err := chunker.NewWithConfig(chunker.ChunkerConfig{
		ChunkSize: config.ChunkSize,
		Overlap:   config.Overlap,
	})
	if err != nil {
		return nil, err
	}

	sourceID := filepath.Base(path)
	r := &Retriever{
		sourceID: sourceID,
		chunks:   ch.Chunks(string(data), sourceID),
		embedder: embedder,
		logger:   config.Logger,
	}
	config.Logger.Printf("chunking and embedding %d chunks from %s", len(r.chunks), sourceID)

	// The hosted embedding provider is quota-bound; pace the load-time calls.
	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	r.embeddings = make([]models.Embedding, len(r.chunks))
	for i, c := range r.chunks {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		r.embeddings[i] = embedder.Embed(ctx, c.Text)
		if r.embeddings[i] == nil {
			config.Logger.Printf("chunk %d of %s has no embedding, excluded from ranking", c.Index, sourceID)
		}
		if config.OnProgress != nil {
			config.OnProgress(i + 1)
		}
	}

	return r, nil
}

// SourceID returns the identity of the loaded source text.
func (r *Retriever) SourceID() string { return r.sourceID }

// Len returns the number of chunks held, including ones without embeddings.
func (r *Retriever) Len() int { return len(r.chunks) }

// Retrieve embeds the query and returns the topK most similar chunks,
// highest score first, ties broken by original chunk index. An empty result
// means the query embedding failed or no chunk had a defined score; callers
// must treat that as "no retrieval possible", not as an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) []models.ScoredChunk {
	if topK <= 0 {
		return nil
	}

	queryEmb := r.embedder.Embed(ctx, query)
	if queryEmb == nil {
		r.logger.Printf("could not compute query embedding for %q", query)
		return nil
	}

	scored := make([]models.ScoredChunk, 0, len(r.chunks))
	for i, c := range r.chunks {
		if r.embeddings[i] == nil {
			continue
		}
		score, ok := similarity.Cosine(queryEmb, r.embeddings[i])
		if !ok {
			continue
		}
		scored = append(scored, models.ScoredChunk{Chunk: c, Score: score})
	}

	// Chunks were scanned in index order, so a stable sort keeps ties
	// ordered by index.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored
}
