package model

import (
	"docmanager-backend/internal/shared"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const MaxNameLength = 255

// CreateAuthorRequest - POST /api/v1/authors
// Required-field checks live in the service so they surface as null-value errors.
type CreateAuthorRequest struct {
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Documents []shared.EntityRef `json:"documents,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Length(0, MaxNameLength)),
		validation.Field(&r.LastName, validation.Length(0, MaxNameLength)),
		validation.Field(&r.Documents),
	)
}

// UpdateAuthorRequest - PUT /api/v1/authors/:id
// Empty fields are left untouched; documents are added, never replaced.
type UpdateAuthorRequest struct {
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Documents []shared.EntityRef `json:"documents,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Length(0, MaxNameLength)),
		validation.Field(&r.LastName, validation.Length(0, MaxNameLength)),
		validation.Field(&r.Documents),
	)
}
