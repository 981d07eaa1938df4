package repository

import (
	"context"

	"docmanager-backend/internal/domains/document/model"
)

// RepositoryInterface is the document side of the relational store.
// Documents own their references; document_authors rows go with the document.
type RepositoryInterface interface {
	// Create persists d, its references and one association per author id
	// atomically; IDs are filled in place.
	Create(ctx context.Context, d *model.Document, authorIDs []int64) error
	GetByID(ctx context.Context, id int64) (*model.Document, error)
	GetAll(ctx context.Context) ([]*model.Document, error)
	// Update writes title/body. When replaceAuthors is set the association set
	// becomes exactly authorIDs.
	Update(ctx context.Context, d *model.Document, authorIDs []int64, replaceAuthors bool) error
	Delete(ctx context.Context, id int64) error
}
