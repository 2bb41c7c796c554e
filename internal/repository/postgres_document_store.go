package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDocumentStore keeps documents as JSONB rows in the documents table.
type PostgresDocumentStore struct {
	pool *pgxpool.Pool
}

// NewPostgresDocumentStore returns a Postgres-backed implementation.
func NewPostgresDocumentStore(pool *pgxpool.Pool) *PostgresDocumentStore {
	return &PostgresDocumentStore{pool: pool}
}

func (s *PostgresDocumentStore) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	const query = `
        INSERT INTO documents (collection, id, fields)
        VALUES ($1, $2, $3::jsonb)
        RETURNING id`

	var id string
	if err := s.pool.QueryRow(ctx, query, collection, uuid.NewString(), fields).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *PostgresDocumentStore) QueryByField(ctx context.Context, collection, field, value string) ([]Document, error) {
	const query = `
        SELECT id, fields
        FROM documents
        WHERE collection = $1 AND fields ->> $2 = $3
        ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, query, collection, field, value)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Document, error) {
		var doc Document
		err := row.Scan(&doc.ID, &doc.Fields)
		return doc, err
	})
}

func (s *PostgresDocumentStore) NewBatch() WriteBatch {
	return &postgresBatch{pool: s.pool}
}

func (s *PostgresDocumentStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

type postgresBatch struct {
	pendingWrites
	pool *pgxpool.Pool
}

// Commit applies all updates in one transaction.
func (b *postgresBatch) Commit(ctx context.Context) error {
	const query = `
        UPDATE documents SET fields = fields || $3::jsonb, updated_at = NOW()
        WHERE collection = $1 AND id = $2`

	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, u := range b.updates {
		batch.Queue(query, u.ref.Collection, u.ref.ID, u.fields)
	}

	results := tx.SendBatch(ctx, batch)
	for _, u := range b.updates {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return fmt.Errorf("update %s/%s: %w", u.ref.Collection, u.ref.ID, err)
		}
		if tag.RowsAffected() == 0 {
			_ = results.Close()
			return fmt.Errorf("update %s/%s: %w", u.ref.Collection, u.ref.ID, ErrDocumentNotFound)
		}
	}
	if err := results.Close(); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	b.updates = nil
	return nil
}
