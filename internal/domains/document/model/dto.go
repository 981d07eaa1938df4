package model

import (
	"docmanager-backend/internal/shared"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ReferenceRequest - a citation in a create request
type ReferenceRequest struct {
	Reference string `json:"reference"`
}

// CreateDocumentRequest - POST /api/v1/documents
// Emptiness and body length are checked by the service; Validate only guards
// the title column width.
type CreateDocumentRequest struct {
	Title      string             `json:"title"`
	Body       string             `json:"body"`
	References []ReferenceRequest `json:"references"`
	Authors    []shared.EntityRef `json:"authors"`
}

func (r CreateDocumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, MaxTitleLength)),
		validation.Field(&r.Authors),
	)
}

// UpdateDocumentRequest - PUT /api/v1/documents/:id
// A non-empty author list replaces the current author set.
type UpdateDocumentRequest struct {
	Title   string             `json:"title"`
	Body    string             `json:"body"`
	Authors []shared.EntityRef `json:"authors,omitempty"`
}

func (r UpdateDocumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, MaxTitleLength)),
		validation.Field(&r.Authors),
	)
}
