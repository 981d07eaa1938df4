package model

import "docmanager-backend/internal/shared"

var (
	ErrDocumentNotFound   = shared.NewError(shared.ErrNotFound, "document not found")
	ErrTitleRequired      = shared.NewError(shared.ErrNullValue, "title must be provided")
	ErrTitleTooLong       = shared.NewError(shared.ErrInvalidValue, "title must not exceed 255 characters")
	ErrBodyRequired       = shared.NewError(shared.ErrNullValue, "body must be provided")
	ErrBodyTooLong        = shared.NewError(shared.ErrInvalidValue, "body must not exceed 1000 characters")
	ErrReferencesRequired = shared.NewError(shared.ErrNullValue, "references must be provided")
	ErrReferenceEmpty     = shared.NewError(shared.ErrNullValue, "reference text must not be empty")
	ErrAuthorsRequired    = shared.NewError(shared.ErrNullValue, "authors must be provided")
)
