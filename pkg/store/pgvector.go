package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"revise/internal/models"
)

type VectorStoreConfig struct {
	ConnString string
	TableName  string
	VectorDim  int
}

// Record is one persisted chunk embedding. Records are insert-only: the
// population tool writes them once and nothing ever updates them.
type Record struct {
	Chapter    string
	ChunkIndex int
	Text       string
	Embedding  []float32
}

// VectorStore persists precomputed chapter embeddings in Postgres with the
// pgvector extension. It is the offline half of the system; interactive
// retrieval never reads from it.
type VectorStore struct {
	config VectorStoreConfig
	pool   *pgxpool.Pool
}

func NewWithConfig(ctx context.Context, config VectorStoreConfig) (*VectorStore, error) {
	if config.TableName == "" {
		config.TableName = "chapter_embeddings"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 768
	}

	pool, err := pgxpool.New(ctx, config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	vs := &VectorStore{
		config: config,
		pool:   pool,
	}

	if err := vs.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return vs, nil
}

func (vs *VectorStore) initialize(ctx context.Context) error {
	// Enable pgvector extension
	_, err := vs.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %v", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			chapter TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			text TEXT NOT NULL,
			embedding vector(%d)
		)`, vs.config.TableName, vs.config.VectorDim)

	_, err = vs.pool.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %v", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)`,
		vs.config.TableName, vs.config.TableName)

	_, err = vs.pool.Exec(ctx, createIndex)
	if err != nil {
		return fmt.Errorf("failed to create index: %v", err)
	}

	return nil
}

// Store inserts one record per chunk with a present embedding. Chunks whose
// embedding is nil are skipped; the caller decides whether to log them.
// All inserts happen in one transaction.
func (vs *VectorStore) Store(ctx context.Context, chapter string, chunks []models.Chunk, embeddings []models.Embedding) (int, error) {
	if len(chunks) != len(embeddings) {
		return 0, fmt.Errorf("chunks and embeddings length mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	tx, err := vs.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (chapter, chunk_index, text, embedding)
		VALUES ($1, $2, $3, $4)`,
		vs.config.TableName)

	inserted := 0
	for i, chunk := range chunks {
		if embeddings[i] == nil {
			continue
		}
		_, err = tx.Exec(ctx, stmt,
			chapter,
			chunk.Index,
			chunk.Text,
			pgvector.NewVector(embeddings[i]),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert chunk %d: %v", chunk.Index, err)
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %v", err)
	}

	return inserted, nil
}

// Chapters lists the distinct chapters present in the store.
func (vs *VectorStore) Chapters(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT DISTINCT chapter FROM %s ORDER BY chapter", vs.config.TableName)

	rows, err := vs.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %v", err)
	}
	defer rows.Close()

	var chapters []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

// Count returns the number of stored records for a chapter.
func (vs *VectorStore) Count(ctx context.Context, chapter string) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE chapter = $1", vs.config.TableName)

	var count int
	if err := vs.pool.QueryRow(ctx, query, chapter).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %v", err)
	}
	return count, nil
}

// Sample returns the first record of a chapter in chunk order, for
// inspection.
func (vs *VectorStore) Sample(ctx context.Context, chapter string) (*Record, error) {
	query := fmt.Sprintf(`
		SELECT chapter, chunk_index, text, embedding
		FROM %s
		WHERE chapter = $1
		ORDER BY chunk_index
		LIMIT 1`,
		vs.config.TableName)

	var rec Record
	var emb pgvector.Vector
	err := vs.pool.QueryRow(ctx, query, chapter).Scan(&rec.Chapter, &rec.ChunkIndex, &rec.Text, &emb)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sample record: %v", err)
	}
	rec.Embedding = emb.Slice()
	return &rec, nil
}

func (vs *VectorStore) Close() {
	if vs.pool != nil {
		vs.pool.Close()
	}
}
