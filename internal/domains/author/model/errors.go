package model

import "docmanager-backend/internal/shared"

var (
	ErrAuthorNotFound      = shared.NewError(shared.ErrNotFound, "author not found")
	ErrAuthorAlreadyExists = shared.NewError(shared.ErrAlreadyExists, "author with the same first and last name already exists")
	ErrFirstNameRequired   = shared.NewError(shared.ErrNullValue, "first name must be provided")
	ErrLastNameRequired    = shared.NewError(shared.ErrNullValue, "last name must be provided")
	ErrAuthorHasDocuments  = shared.NewError(shared.ErrAttachedEntity, "author has documents attached and cannot be deleted")
	ErrDocumentMissing     = shared.NewError(shared.ErrNotFound, "document to attach does not exist")
)
