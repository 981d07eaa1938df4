package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"docmanager-backend/internal/domains/document/model"
	"docmanager-backend/internal/infrastructure/database"
	"docmanager-backend/internal/shared"
	"docmanager-backend/pkg/cache"
	txutil "docmanager-backend/pkg/database"
)

// ErrDanglingAssociation is returned when an association points at a missing
// author or document row
var ErrDanglingAssociation = shared.NewError(shared.ErrNotFound, "associated author or document does not exist")

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) RepositoryInterface {
	if c == nil {
		c = cache.Noop{}
	}
	return &postgresRepository{
		pool:  pool,
		cache: c,
	}
}

const selectDocument = `
        SELECT id, title, body, created_at, updated_at
        FROM documents
`

// Create - document, references và associations trong 1 transaction
func (r *postgresRepository) Create(ctx context.Context, d *model.Document, authorIDs []int64) error {
	err := txutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO documents (title, body) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
			d.Title, d.Body,
		).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert document: %w", err)
		}

		for i := range d.References {
			err := tx.QueryRow(ctx,
				`INSERT INTO "references" (document_id, reference) VALUES ($1, $2) RETURNING id`,
				d.ID, d.References[i].Reference,
			).Scan(&d.References[i].ID)
			if err != nil {
				return fmt.Errorf("failed to insert reference: %w", err)
			}
		}

		return insertAuthors(ctx, tx, d.ID, authorIDs)
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, d.ID)
	return nil
}

// GetByID retrieves document by id with caching
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Document, error) {
	cacheKey := cache.DocumentKey(id)

	var d model.Document
	if hit, err := r.cache.Get(ctx, cacheKey, &d); err == nil && hit {
		return &d, nil
	}

	err := r.pool.QueryRow(ctx, selectDocument+` WHERE id = $1`, id).
		Scan(&d.ID, &d.Title, &d.Body, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document by id: %w", err)
	}

	if err := r.loadRelations(ctx, []*model.Document{&d}); err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey, d, cache.DocumentTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("document cache write failed")
	}

	return &d, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]*model.Document, error) {
	var cached []*model.Document
	if hit, err := r.cache.Get(ctx, cache.DocumentListKey, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := r.pool.Query(ctx, selectDocument+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := make([]*model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Body, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	if err := r.loadRelations(ctx, docs); err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cache.DocumentListKey, docs, cache.DocumentTTL); err != nil {
		log.Warn().Err(err).Msg("document list cache write failed")
	}

	return docs, nil
}

func (r *postgresRepository) Update(ctx context.Context, d *model.Document, authorIDs []int64, replaceAuthors bool) error {
	err := txutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`UPDATE documents SET title = $1, body = $2, updated_at = NOW() WHERE id = $3 RETURNING updated_at`,
			d.Title, d.Body, d.ID,
		).Scan(&d.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrDocumentNotFound
			}
			return fmt.Errorf("failed to update document: %w", err)
		}

		if !replaceAuthors {
			return nil
		}

		if _, err := tx.Exec(ctx, `DELETE FROM document_authors WHERE document_id = $1`, d.ID); err != nil {
			return fmt.Errorf("failed to clear document authors: %w", err)
		}
		return insertAuthors(ctx, tx, d.ID, authorIDs)
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, d.ID)
	return nil
}

// Delete - references và document_authors bị xóa theo ON DELETE CASCADE
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDocumentNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func insertAuthors(ctx context.Context, q txutil.Querier, documentID int64, authorIDs []int64) error {
	for _, authorID := range authorIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO document_authors (document_id, author_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			documentID, authorID,
		)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: id=%d", ErrDanglingAssociation, authorID)
			}
			return fmt.Errorf("failed to insert document author: %w", err)
		}
	}
	return nil
}

// loadRelations fills references and authors for docs using two queries
func (r *postgresRepository) loadRelations(ctx context.Context, docs []*model.Document) error {
	if len(docs) == 0 {
		return nil
	}

	byID := make(map[int64]*model.Document, len(docs))
	ids := make([]int64, 0, len(docs))
	for _, d := range docs {
		d.References = []model.Reference{}
		d.Authors = []model.AuthorSummary{}
		byID[d.ID] = d
		ids = append(ids, d.ID)
	}

	refRows, err := r.pool.Query(ctx,
		`SELECT document_id, id, reference FROM "references" WHERE document_id = ANY($1) ORDER BY document_id, id`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("failed to query references: %w", err)
	}
	for refRows.Next() {
		var docID int64
		var ref model.Reference
		if err := refRows.Scan(&docID, &ref.ID, &ref.Reference); err != nil {
			refRows.Close()
			return fmt.Errorf("failed to scan reference: %w", err)
		}
		byID[docID].References = append(byID[docID].References, ref)
	}
	refRows.Close()
	if err := refRows.Err(); err != nil {
		return fmt.Errorf("error iterating references: %w", err)
	}

	authorRows, err := r.pool.Query(ctx, `
        SELECT da.document_id, a.id, a.first_name, a.last_name
        FROM document_authors da
        JOIN authors a ON a.id = da.author_id
        WHERE da.document_id = ANY($1)
        ORDER BY da.document_id, a.id
    `, ids)
	if err != nil {
		return fmt.Errorf("failed to query document authors: %w", err)
	}
	defer authorRows.Close()

	for authorRows.Next() {
		var docID int64
		var a model.AuthorSummary
		if err := authorRows.Scan(&docID, &a.ID, &a.FirstName, &a.LastName); err != nil {
			return fmt.Errorf("failed to scan document author: %w", err)
		}
		byID[docID].Authors = append(byID[docID].Authors, a)
	}
	if err := authorRows.Err(); err != nil {
		return fmt.Errorf("error iterating document authors: %w", err)
	}

	return nil
}

// invalidate - author views embed document summaries, so they go too
func (r *postgresRepository) invalidate(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, cache.DocumentKey(id), cache.DocumentListKey); err != nil {
		log.Warn().Err(err).Int64("document_id", id).Msg("document cache invalidation failed")
	}
	if err := r.cache.DeletePattern(ctx, cache.AuthorKeyPattern); err != nil {
		log.Warn().Err(err).Msg("author cache invalidation failed")
	}
}
