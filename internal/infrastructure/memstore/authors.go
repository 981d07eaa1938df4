package memstore

import (
	"context"
	"fmt"

	"docmanager-backend/internal/domains/author/model"
	"docmanager-backend/internal/domains/author/repository"
)

var _ repository.RepositoryInterface = (*AuthorRepository)(nil)

// AuthorRepository implements the author repository over Store
type AuthorRepository struct {
	s *Store
}

func (r *AuthorRepository) Create(_ context.Context, a *model.Author, documentIDs []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTakenLocked(a.FirstName, a.LastName, 0) {
		return model.ErrAuthorAlreadyExists
	}
	if err := r.documentsExistLocked(documentIDs); err != nil {
		return err
	}

	r.s.nextAuthorID++
	now := r.s.now()
	row := &authorRow{
		id:        r.s.nextAuthorID,
		firstName: a.FirstName,
		lastName:  a.LastName,
		createdAt: now,
		updatedAt: now,
	}
	r.s.authors[row.id] = row
	for _, documentID := range documentIDs {
		r.s.link(documentID, row.id)
	}

	a.ID = row.id
	a.CreatedAt = now
	a.UpdatedAt = now
	a.Documents = r.s.authorLocked(row.id).Documents
	return nil
}

func (r *AuthorRepository) GetByID(_ context.Context, id int64) (*model.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.authors[id]; !ok {
		return nil, model.ErrAuthorNotFound
	}
	return r.s.authorLocked(id), nil
}

func (r *AuthorRepository) GetAll(_ context.Context) ([]*model.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	authors := make([]*model.Author, 0, len(r.s.authors))
	for _, id := range sortedKeys(r.s.authors) {
		authors = append(authors, r.s.authorLocked(id))
	}
	return authors, nil
}

func (r *AuthorRepository) FindByName(_ context.Context, firstName, lastName string) (*model.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range sortedKeys(r.s.authors) {
		row := r.s.authors[id]
		if row.firstName == firstName && row.lastName == lastName {
			return r.s.authorLocked(id), nil
		}
	}
	return nil, model.ErrAuthorNotFound
}

func (r *AuthorRepository) Update(_ context.Context, a *model.Author, documentIDs []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.authors[a.ID]
	if !ok {
		return model.ErrAuthorNotFound
	}
	if r.nameTakenLocked(a.FirstName, a.LastName, a.ID) {
		return model.ErrAuthorAlreadyExists
	}
	if err := r.documentsExistLocked(documentIDs); err != nil {
		return err
	}

	row.firstName = a.FirstName
	row.lastName = a.LastName
	row.updatedAt = r.s.now()
	for _, documentID := range documentIDs {
		r.s.link(documentID, a.ID)
	}
	a.UpdatedAt = row.updatedAt
	return nil
}

// Delete behaves like the RESTRICT foreign key of the SQL schema
func (r *AuthorRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.authors[id]; !ok {
		return model.ErrAuthorNotFound
	}
	if len(r.s.authorDocs[id]) > 0 {
		return model.ErrAuthorHasDocuments
	}

	delete(r.s.authors, id)
	delete(r.s.authorDocs, id)
	return nil
}

func (r *AuthorRepository) CountDocuments(_ context.Context, id int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.authorDocs[id]), nil
}

// documentsExistLocked plays the document_authors foreign key
func (r *AuthorRepository) documentsExistLocked(documentIDs []int64) error {
	for _, id := range documentIDs {
		if _, ok := r.s.documents[id]; !ok {
			return fmt.Errorf("%w: id=%d", model.ErrDocumentMissing, id)
		}
	}
	return nil
}

// nameTakenLocked - unique (first_name, last_name), ignoring exceptID
func (r *AuthorRepository) nameTakenLocked(firstName, lastName string, exceptID int64) bool {
	for id, row := range r.s.authors {
		if id != exceptID && row.firstName == firstName && row.lastName == lastName {
			return true
		}
	}
	return false
}
