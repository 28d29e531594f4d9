package llm_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revise/pkg/llm"
)

func TestNewEmbedderWithConfig(t *testing.T) {
	emb, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		Model:   "nomic-embed-text:latest",
		BaseURL: "http://localhost:11434",
	})
	assert.NoError(t, err)
	assert.NotNil(t, emb)
}

func TestNewGeneratorWithConfig(t *testing.T) {
	gen, err := llm.NewGeneratorWithConfig(llm.GeneratorConfig{
		Model:       "mistral",
		Temperature: 0.5,
		MaxTokens:   1000,
		BaseURL:     "http://localhost:11434",
	})
	assert.NoError(t, err)
	assert.NotNil(t, gen)
}

func TestNewGeneratorWithConfig_Invalid(t *testing.T) {
	_, err := llm.NewGeneratorWithConfig(llm.GeneratorConfig{Temperature: 1.5})
	assert.Error(t, err)

	_, err = llm.NewGeneratorWithConfig(llm.GeneratorConfig{MaxTokens: -1})
	assert.Error(t, err)
}

func TestEmbed(t *testing.T) {
	// Requires a running Ollama server with the embedding model pulled.
	if os.Getenv("OLLAMA_TEST") == "" {
		t.Skip("set OLLAMA_TEST to run against a live Ollama server")
	}

	emb, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{})
	require.NoError(t, err)

	vec := emb.Embed(context.Background(), "Television is mass media.")
	assert.NotNil(t, vec)
	assert.Equal(t, 768, len(vec))
}

func TestEmbed_UnreachableServerIsAbsent(t *testing.T) {
	emb, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
	})
	require.NoError(t, err)

	vec := emb.Embed(context.Background(), "some text")
	assert.Nil(t, vec)
}
