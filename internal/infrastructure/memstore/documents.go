package memstore

import (
	"context"
	"fmt"

	"docmanager-backend/internal/domains/document/model"
	"docmanager-backend/internal/domains/document/repository"
)

var _ repository.RepositoryInterface = (*DocumentRepository)(nil)

// DocumentRepository implements the document repository over Store
type DocumentRepository struct {
	s *Store
}

func (r *DocumentRepository) Create(_ context.Context, d *model.Document, authorIDs []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// validate every association first so nothing partial is stored
	for _, authorID := range authorIDs {
		if _, ok := r.s.authors[authorID]; !ok {
			return fmt.Errorf("%w: id=%d", repository.ErrDanglingAssociation, authorID)
		}
	}

	r.s.nextDocumentID++
	now := r.s.now()
	row := &documentRow{
		id:         r.s.nextDocumentID,
		title:      d.Title,
		body:       d.Body,
		references: make([]model.Reference, len(d.References)),
		createdAt:  now,
		updatedAt:  now,
	}
	for i, ref := range d.References {
		r.s.nextReferenceID++
		row.references[i] = model.Reference{ID: r.s.nextReferenceID, Reference: ref.Reference}
	}
	r.s.documents[row.id] = row

	for _, authorID := range authorIDs {
		r.s.link(row.id, authorID)
	}

	*d = *r.s.documentLocked(row.id)
	return nil
}

func (r *DocumentRepository) GetByID(_ context.Context, id int64) (*model.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.documents[id]; !ok {
		return nil, model.ErrDocumentNotFound
	}
	return r.s.documentLocked(id), nil
}

func (r *DocumentRepository) GetAll(_ context.Context) ([]*model.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	docs := make([]*model.Document, 0, len(r.s.documents))
	for _, id := range sortedKeys(r.s.documents) {
		docs = append(docs, r.s.documentLocked(id))
	}
	return docs, nil
}

func (r *DocumentRepository) Update(_ context.Context, d *model.Document, authorIDs []int64, replaceAuthors bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.documents[d.ID]
	if !ok {
		return model.ErrDocumentNotFound
	}
	if replaceAuthors {
		for _, authorID := range authorIDs {
			if _, ok := r.s.authors[authorID]; !ok {
				return fmt.Errorf("%w: id=%d", repository.ErrDanglingAssociation, authorID)
			}
		}
	}

	row.title = d.Title
	row.body = d.Body
	row.updatedAt = r.s.now()
	d.UpdatedAt = row.updatedAt

	if replaceAuthors {
		r.s.unlinkDocument(d.ID)
		for _, authorID := range authorIDs {
			r.s.link(d.ID, authorID)
		}
	}
	return nil
}

// Delete drops the document, its references and its associations
func (r *DocumentRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.documents[id]; !ok {
		return model.ErrDocumentNotFound
	}

	r.s.unlinkDocument(id)
	delete(r.s.documents, id)
	return nil
}
