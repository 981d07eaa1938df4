package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"docmanager-backend/internal/domains/document/model"
	"docmanager-backend/internal/domains/document/repository"
	"docmanager-backend/internal/shared"
)

type documentService struct {
	repo    repository.RepositoryInterface
	authors AuthorLookup
}

func NewDocumentService(repo repository.RepositoryInterface, authors AuthorLookup) ServiceInterface {
	return &documentService{
		repo:    repo,
		authors: authors,
	}
}

func (s *documentService) Create(ctx context.Context, req model.CreateDocumentRequest) (*model.Document, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, model.ErrTitleRequired
	}
	if err := checkTitle(title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, model.ErrBodyRequired
	}
	if err := checkBody(req.Body); err != nil {
		return nil, err
	}

	if len(req.References) == 0 {
		return nil, model.ErrReferencesRequired
	}
	refs := make([]model.Reference, 0, len(req.References))
	for i, r := range req.References {
		text := strings.TrimSpace(r.Reference)
		if text == "" {
			return nil, fmt.Errorf("%w: index=%d", model.ErrReferenceEmpty, i)
		}
		refs = append(refs, model.Reference{Reference: text})
	}

	if len(req.Authors) == 0 {
		return nil, model.ErrAuthorsRequired
	}
	authorIDs, err := s.resolveAuthors(ctx, req.Authors)
	if err != nil {
		return nil, err
	}

	d := &model.Document{
		Title:      title,
		Body:       req.Body,
		References: refs,
	}
	if err := s.repo.Create(ctx, d, authorIDs); err != nil {
		return nil, err
	}

	log.Info().Int64("document_id", d.ID).Ints64("author_ids", authorIDs).Msg("document created")
	return s.repo.GetByID(ctx, d.ID)
}

func (s *documentService) GetByID(ctx context.Context, id int64) (*model.Document, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, withID(err, id)
	}
	return d, nil
}

func (s *documentService) GetAll(ctx context.Context) ([]*model.Document, error) {
	return s.repo.GetAll(ctx)
}

func (s *documentService) Update(ctx context.Context, id int64, req model.UpdateDocumentRequest) (*model.Document, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, withID(err, id)
	}

	if v := strings.TrimSpace(req.Title); v != "" {
		if err := checkTitle(v); err != nil {
			return nil, err
		}
		d.Title = v
	}
	if strings.TrimSpace(req.Body) != "" {
		if err := checkBody(req.Body); err != nil {
			return nil, err
		}
		d.Body = req.Body
	}

	// Replacing: a supplied list becomes the whole author set
	var authorIDs []int64
	replace := len(req.Authors) > 0
	if replace {
		if authorIDs, err = s.resolveAuthors(ctx, req.Authors); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, d, authorIDs, replace); err != nil {
		return nil, withID(err, id)
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes the document with its references and associations
func (s *documentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return withID(err, id)
	}

	log.Info().Int64("document_id", id).Msg("document deleted")
	return nil
}

func (s *documentService) resolveAuthors(ctx context.Context, refs []shared.EntityRef) ([]int64, error) {
	ids := shared.RefIDs(refs)
	for _, id := range ids {
		if _, err := s.authors.GetByID(ctx, id); err != nil {
			return nil, withID(err, id)
		}
	}
	return ids, nil
}

func checkTitle(title string) error {
	if n := utf8.RuneCountInString(title); n > model.MaxTitleLength {
		return fmt.Errorf("%w: length=%d", model.ErrTitleTooLong, n)
	}
	return nil
}

func checkBody(body string) error {
	if n := utf8.RuneCountInString(body); n > model.MaxBodyLength {
		return fmt.Errorf("%w: length=%d", model.ErrBodyTooLong, n)
	}
	return nil
}

func withID(err error, id int64) error {
	if errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("%w: id=%d", err, id)
	}
	return err
}
