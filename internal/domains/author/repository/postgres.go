package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"docmanager-backend/internal/domains/author/model"
	"docmanager-backend/internal/infrastructure/database"
	"docmanager-backend/pkg/cache"
	txutil "docmanager-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface
// Uses pgxpool for PostgreSQL and Redis for caching
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) RepositoryInterface {
	if c == nil {
		c = cache.Noop{}
	}
	return &postgresRepository{
		pool:  pool,
		cache: c,
	}
}

const selectAuthor = `
        SELECT id, first_name, last_name, created_at, updated_at
        FROM authors
`

// Create - author row và document_authors trong 1 transaction
func (r *postgresRepository) Create(ctx context.Context, a *model.Author, documentIDs []int64) error {
	err := txutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO authors (first_name, last_name) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
			a.FirstName, a.LastName,
		).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return model.ErrAuthorAlreadyExists
			}
			return fmt.Errorf("failed to create author: %w", err)
		}

		return insertDocuments(ctx, tx, a.ID, documentIDs)
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, a.ID)
	return nil
}

// GetByID retrieves author by id with caching
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	cacheKey := cache.AuthorKey(id)

	var a model.Author
	if hit, err := r.cache.Get(ctx, cacheKey, &a); err == nil && hit {
		return &a, nil
	}

	err := r.pool.QueryRow(ctx, selectAuthor+` WHERE id = $1`, id).
		Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	docs, err := r.loadDocuments(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	a.Documents = docs[id]

	if err := r.cache.Set(ctx, cacheKey, a, cache.AuthorTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("author cache write failed")
	}

	return &a, nil
}

// GetAll returns every author ordered by id
func (r *postgresRepository) GetAll(ctx context.Context) ([]*model.Author, error) {
	var cached []*model.Author
	if hit, err := r.cache.Get(ctx, cache.AuthorListKey, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := r.pool.Query(ctx, selectAuthor+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := make([]*model.Author, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, &a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	docs, err := r.loadDocuments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range authors {
		a.Documents = docs[a.ID]
	}

	if err := r.cache.Set(ctx, cache.AuthorListKey, authors, cache.AuthorTTL); err != nil {
		log.Warn().Err(err).Msg("author list cache write failed")
	}

	return authors, nil
}

func (r *postgresRepository) FindByName(ctx context.Context, firstName, lastName string) (*model.Author, error) {
	var a model.Author
	err := r.pool.QueryRow(ctx, selectAuthor+` WHERE first_name = $1 AND last_name = $2`, firstName, lastName).
		Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to find author by name: %w", err)
	}

	docs, err := r.loadDocuments(ctx, []int64{a.ID})
	if err != nil {
		return nil, err
	}
	a.Documents = docs[a.ID]

	return &a, nil
}

// Update - rename và associations mới commit cùng nhau
func (r *postgresRepository) Update(ctx context.Context, a *model.Author, documentIDs []int64) error {
	err := txutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`UPDATE authors SET first_name = $1, last_name = $2, updated_at = NOW() WHERE id = $3 RETURNING updated_at`,
			a.FirstName, a.LastName, a.ID,
		).Scan(&a.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrAuthorNotFound
			}
			if database.IsUniqueViolation(err) {
				return model.ErrAuthorAlreadyExists
			}
			return fmt.Errorf("failed to update author: %w", err)
		}

		return insertDocuments(ctx, tx, a.ID, documentIDs)
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, a.ID)
	return nil
}

// Delete - document_authors.author_id is ON DELETE RESTRICT, so the FK
// enforces the guard even if a document was attached after the service check.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return model.ErrAuthorHasDocuments
		}
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) CountDocuments(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM document_authors WHERE author_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count author documents: %w", err)
	}
	return count, nil
}

func insertDocuments(ctx context.Context, q txutil.Querier, authorID int64, documentIDs []int64) error {
	for _, documentID := range documentIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO document_authors (document_id, author_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			documentID, authorID,
		)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: id=%d", model.ErrDocumentMissing, documentID)
			}
			return fmt.Errorf("failed to attach author %d to document %d: %w", authorID, documentID, err)
		}
	}
	return nil
}

// loadDocuments resolves the document side of the relation for authorIDs in one query
func (r *postgresRepository) loadDocuments(ctx context.Context, authorIDs []int64) (map[int64][]model.DocumentSummary, error) {
	result := make(map[int64][]model.DocumentSummary, len(authorIDs))
	for _, id := range authorIDs {
		result[id] = []model.DocumentSummary{}
	}
	if len(authorIDs) == 0 {
		return result, nil
	}

	query := `
        SELECT da.author_id, d.id, d.title, d.body
        FROM document_authors da
        JOIN documents d ON d.id = da.document_id
        WHERE da.author_id = ANY($1)
        ORDER BY da.author_id, d.id
    `

	rows, err := r.pool.Query(ctx, query, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query author documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var authorID int64
		var d model.DocumentSummary
		if err := rows.Scan(&authorID, &d.ID, &d.Title, &d.Body); err != nil {
			return nil, fmt.Errorf("failed to scan author document: %w", err)
		}
		result[authorID] = append(result[authorID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author documents: %w", err)
	}

	return result, nil
}

// invalidate - document views embed author names, so they go too
func (r *postgresRepository) invalidate(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, cache.AuthorKey(id), cache.AuthorListKey); err != nil {
		log.Warn().Err(err).Int64("author_id", id).Msg("author cache invalidation failed")
	}
	if err := r.cache.DeletePattern(ctx, cache.DocumentKeyPattern); err != nil {
		log.Warn().Err(err).Msg("document cache invalidation failed")
	}
}
