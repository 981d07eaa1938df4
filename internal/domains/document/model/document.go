package model

import "time"

const (
	MaxTitleLength = 255
	MaxBodyLength  = 1000
)

// Document owns its references; authors are the document's side of the
// document_authors relation.
type Document struct {
	ID         int64
	Title      string
	Body       string
	References []Reference
	Authors    []AuthorSummary
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Reference is a citation owned by exactly one document
type Reference struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
}

// AuthorSummary is the view of an author embedded in a document
type AuthorSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DocumentResponse is both the HTTP representation and the document-delete message body
type DocumentResponse struct {
	ID         int64           `json:"id"`
	Title      string          `json:"title"`
	Body       string          `json:"body"`
	References []Reference     `json:"references"`
	Authors    []AuthorSummary `json:"authors"`
}

func (d *Document) ToResponse() *DocumentResponse {
	refs := make([]Reference, len(d.References))
	copy(refs, d.References)
	authors := make([]AuthorSummary, len(d.Authors))
	copy(authors, d.Authors)

	return &DocumentResponse{
		ID:         d.ID,
		Title:      d.Title,
		Body:       d.Body,
		References: refs,
		Authors:    authors,
	}
}

func (d *Document) AuthorIDs() []int64 {
	ids := make([]int64, 0, len(d.Authors))
	for _, a := range d.Authors {
		ids = append(ids, a.ID)
	}
	return ids
}
