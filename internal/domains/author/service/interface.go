package service

import (
	"context"

	"docmanager-backend/internal/domains/author/model"
	documentModel "docmanager-backend/internal/domains/document/model"
)

// ServiceInterface is the author registry
type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	GetAll(ctx context.Context) ([]*model.Author, error)
	// Update overwrites non-empty names and adds the author to every listed document
	Update(ctx context.Context, id int64, req model.UpdateAuthorRequest) (*model.Author, error)
	// Delete refuses authors that still have documents
	Delete(ctx context.Context, id int64) error
}

// DocumentLookup resolves document references before an author write
type DocumentLookup interface {
	GetByID(ctx context.Context, id int64) (*documentModel.Document, error)
}
