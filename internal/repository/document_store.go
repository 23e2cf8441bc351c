package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Collection names used by the service.
const (
	CollectionReports = "laboratory_reports"
	CollectionUsers   = "users"
)

// ErrDocumentNotFound is returned when a document id is absent in a collection.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore is a schemaless key-value collection store addressed by
// collection name + document id. No transactions are assumed; callers follow
// read-validate-write and accept a last-writer-wins window on concurrent edits
// to the same document.
type DocumentStore interface {
	GetByID(ctx context.Context, collection, id string) (json.RawMessage, error)
	QueryAll(ctx context.Context, collection string) ([]json.RawMessage, error)
	CreateOrMerge(ctx context.Context, collection, id string, doc json.RawMessage) error
	Delete(ctx context.Context, collection, id string) error
}

type pgDocumentStore struct {
	pool *pgxpool.Pool
}

// NewPGDocumentStore returns a DocumentStore backed by a single Postgres JSONB
// table keyed on (collection, doc_id).
func NewPGDocumentStore(pool *pgxpool.Pool) DocumentStore {
	return &pgDocumentStore{pool: pool}
}

func (s *pgDocumentStore) GetByID(ctx context.Context, collection, id string) (json.RawMessage, error) {
	const query = `SELECT doc FROM documents WHERE collection=$1 AND doc_id=$2`
	var doc json.RawMessage
	if err := s.pool.QueryRow(ctx, query, collection, id).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *pgDocumentStore) QueryAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	const query = `SELECT doc FROM documents WHERE collection=$1 ORDER BY created_at`
	rows, err := s.pool.Query(ctx, query, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var doc json.RawMessage
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *pgDocumentStore) CreateOrMerge(ctx context.Context, collection, id string, doc json.RawMessage) error {
	// Shallow merge on conflict; engine callers always write the full document.
	const query = `
        INSERT INTO documents (collection, doc_id, doc)
        VALUES ($1,$2,$3)
        ON CONFLICT (collection, doc_id)
        DO UPDATE SET doc = documents.doc || EXCLUDED.doc, updated_at = NOW()`
	_, err := s.pool.Exec(ctx, query, collection, id, doc)
	return err
}

func (s *pgDocumentStore) Delete(ctx context.Context, collection, id string) error {
	const query = `DELETE FROM documents WHERE collection=$1 AND doc_id=$2`
	cmd, err := s.pool.Exec(ctx, query, collection, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
