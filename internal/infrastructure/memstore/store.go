// Package memstore is an in-memory relational store used by tests and by the
// memory store driver. Author<->Document is kept as a pair of id sets guarded by
// a single RWMutex, so both sides of the relation always agree.
package memstore

import (
	"sort"
	"sync"
	"time"

	authorModel "docmanager-backend/internal/domains/author/model"
	documentModel "docmanager-backend/internal/domains/document/model"
)

type authorRow struct {
	id        int64
	firstName string
	lastName  string
	createdAt time.Time
	updatedAt time.Time
}

type documentRow struct {
	id         int64
	title      string
	body       string
	references []documentModel.Reference
	createdAt  time.Time
	updatedAt  time.Time
}

type idSet map[int64]struct{}

func (s idSet) sorted() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Store holds every table of the catalogue
type Store struct {
	mu sync.RWMutex

	authors    map[int64]*authorRow
	documents  map[int64]*documentRow
	authorDocs map[int64]idSet // author id -> document ids
	docAuthors map[int64]idSet // document id -> author ids

	nextAuthorID    int64
	nextDocumentID  int64
	nextReferenceID int64

	now func() time.Time
}

func New() *Store {
	return &Store{
		authors:    map[int64]*authorRow{},
		documents:  map[int64]*documentRow{},
		authorDocs: map[int64]idSet{},
		docAuthors: map[int64]idSet{},
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Authors returns the author repository view of the store
func (s *Store) Authors() *AuthorRepository {
	return &AuthorRepository{s: s}
}

// Documents returns the document repository view of the store
func (s *Store) Documents() *DocumentRepository {
	return &DocumentRepository{s: s}
}

// Snapshot is a comparable dump of the store contents, ordered by id.
type Snapshot struct {
	Authors   []authorModel.AuthorResponse
	Documents []documentModel.DocumentResponse
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Authors:   make([]authorModel.AuthorResponse, 0, len(s.authors)),
		Documents: make([]documentModel.DocumentResponse, 0, len(s.documents)),
	}
	for _, id := range sortedKeys(s.authors) {
		snap.Authors = append(snap.Authors, *s.authorLocked(id).ToResponse())
	}
	for _, id := range sortedKeys(s.documents) {
		snap.Documents = append(snap.Documents, *s.documentLocked(id).ToResponse())
	}
	return snap
}

// authorLocked builds the Author view; caller holds mu
func (s *Store) authorLocked(id int64) *authorModel.Author {
	row := s.authors[id]
	a := &authorModel.Author{
		ID:        row.id,
		FirstName: row.firstName,
		LastName:  row.lastName,
		Documents: []authorModel.DocumentSummary{},
		CreatedAt: row.createdAt,
		UpdatedAt: row.updatedAt,
	}
	for _, docID := range s.authorDocs[id].sorted() {
		d := s.documents[docID]
		a.Documents = append(a.Documents, authorModel.DocumentSummary{ID: d.id, Title: d.title, Body: d.body})
	}
	return a
}

// documentLocked builds the Document view; caller holds mu
func (s *Store) documentLocked(id int64) *documentModel.Document {
	row := s.documents[id]
	d := &documentModel.Document{
		ID:         row.id,
		Title:      row.title,
		Body:       row.body,
		References: make([]documentModel.Reference, len(row.references)),
		Authors:    []documentModel.AuthorSummary{},
		CreatedAt:  row.createdAt,
		UpdatedAt:  row.updatedAt,
	}
	copy(d.References, row.references)
	for _, authorID := range s.docAuthors[id].sorted() {
		a := s.authors[authorID]
		d.Authors = append(d.Authors, documentModel.AuthorSummary{ID: a.id, FirstName: a.firstName, LastName: a.lastName})
	}
	return d
}

// link adds one association on both sides; caller holds mu for writing
func (s *Store) link(documentID, authorID int64) {
	if s.docAuthors[documentID] == nil {
		s.docAuthors[documentID] = idSet{}
	}
	if s.authorDocs[authorID] == nil {
		s.authorDocs[authorID] = idSet{}
	}
	s.docAuthors[documentID][authorID] = struct{}{}
	s.authorDocs[authorID][documentID] = struct{}{}
}

// unlinkDocument drops every association of documentID; caller holds mu for writing
func (s *Store) unlinkDocument(documentID int64) {
	for authorID := range s.docAuthors[documentID] {
		delete(s.authorDocs[authorID], documentID)
		if len(s.authorDocs[authorID]) == 0 {
			delete(s.authorDocs, authorID)
		}
	}
	delete(s.docAuthors, documentID)
}

func sortedKeys[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
