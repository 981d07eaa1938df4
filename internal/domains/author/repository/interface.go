package repository

import (
	"context"

	"docmanager-backend/internal/domains/author/model"
)

// RepositoryInterface is the author side of the relational store.
// Implementations resolve Author.Documents from the document_authors relation.
type RepositoryInterface interface {
	// Create inserts a plus one association per document id atomically and
	// fills ID/timestamps. Returns model.ErrAuthorAlreadyExists when
	// (first_name, last_name) is taken, model.ErrDocumentMissing when a
	// document is gone; nothing is written in either case.
	Create(ctx context.Context, a *model.Author, documentIDs []int64) error
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	GetAll(ctx context.Context) ([]*model.Author, error)
	// FindByName is findByFirstNameAndLastName; model.ErrAuthorNotFound on miss
	FindByName(ctx context.Context, firstName, lastName string) (*model.Author, error)
	// Update writes the name fields and adds documentIDs to the existing
	// associations in one unit; a failure leaves the author untouched
	Update(ctx context.Context, a *model.Author, documentIDs []int64) error
	// Delete removes the author row. Fails with model.ErrAuthorHasDocuments
	// while any document still references it.
	Delete(ctx context.Context, id int64) error
	// CountDocuments bypasses any cache; used by the deletion guard
	CountDocuments(ctx context.Context, id int64) (int, error)
}
