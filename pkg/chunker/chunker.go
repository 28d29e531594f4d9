package chunker

import (
	"fmt"
	"strings"

	"revise/internal/models"
)

type ChunkerConfig struct {
	ChunkSize int // words per chunk
	Overlap   int // words shared between consecutive chunks
}

type Chunker struct {
	config ChunkerConfig
}

func NewWithConfig(config ChunkerConfig) (Chunker, error) {
	if config.ChunkSize == 0 {
		config.ChunkSize = 300
	}
	if config.ChunkSize < 0 {
		return Chunker{}, fmt.Errorf("chunk size must be positive, got %d", config.ChunkSize)
	}
	if config.Overlap < 0 || config.Overlap >= config.ChunkSize {
		// overlap >= chunk size would produce a non-advancing window
		return Chunker{}, fmt.Errorf("overlap must be in [0, chunk size), got %d with chunk size %d",
			config.Overlap, config.ChunkSize)
	}
	return Chunker{config: config}, nil
}

// Split breaks text into overlapping windows of whitespace-delimited words.
// Each window holds at most ChunkSize words and starts Overlap words before
// the previous window's end. Empty text yields no chunks. Same input always
// yields the same sequence.
func (c Chunker) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.config.ChunkSize - c.config.Overlap
	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + c.config.ChunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// Chunks runs Split and wraps each window as an indexed chunk of the given
// source.
func (c Chunker) Chunks(text, sourceID string) []models.Chunk {
	parts := c.Split(text)
	chunks := make([]models.Chunk, 0, len(parts))
	for i, p := range parts {
		chunks = append(chunks, models.Chunk{
			Index:    i,
			Text:     p,
			SourceID: sourceID,
		})
	}
	return chunks
}
