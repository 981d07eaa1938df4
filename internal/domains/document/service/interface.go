package service

import (
	"context"

	authorModel "docmanager-backend/internal/domains/author/model"
	"docmanager-backend/internal/domains/document/model"
)

// ServiceInterface is the document registry
type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateDocumentRequest) (*model.Document, error)
	GetByID(ctx context.Context, id int64) (*model.Document, error)
	GetAll(ctx context.Context) ([]*model.Document, error)
	// Update overwrites non-empty fields; a non-empty author list replaces the author set
	Update(ctx context.Context, id int64, req model.UpdateDocumentRequest) (*model.Document, error)
	Delete(ctx context.Context, id int64) error
}

// AuthorLookup is the part of the author store the document registry needs
type AuthorLookup interface {
	GetByID(ctx context.Context, id int64) (*authorModel.Author, error)
}
