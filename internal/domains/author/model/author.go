package model

import "time"

// Author - documents is the author's side of the document_authors relation,
// resolved at read time.
type Author struct {
	ID        int64
	FirstName string
	LastName  string
	Documents []DocumentSummary
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentSummary is the view of a document embedded in an author
type DocumentSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// AuthorResponse is both the HTTP representation and the author-delete message body
type AuthorResponse struct {
	ID        int64             `json:"id"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Documents []DocumentSummary `json:"documents"`
}

// ToResponse converts Author to AuthorResponse
func (a *Author) ToResponse() *AuthorResponse {
	docs := make([]DocumentSummary, len(a.Documents))
	copy(docs, a.Documents)

	return &AuthorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Documents: docs,
	}
}

// DocumentIDs returns the ids of the attached documents in order
func (a *Author) DocumentIDs() []int64 {
	ids := make([]int64, 0, len(a.Documents))
	for _, d := range a.Documents {
		ids = append(ids, d.ID)
	}
	return ids
}
