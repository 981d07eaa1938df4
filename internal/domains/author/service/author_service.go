package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"docmanager-backend/internal/domains/author/model"
	"docmanager-backend/internal/domains/author/repository"
	"docmanager-backend/internal/shared"
)

type authorService struct {
	repo      repository.RepositoryInterface
	documents DocumentLookup
}

func NewAuthorService(repo repository.RepositoryInterface, documents DocumentLookup) ServiceInterface {
	return &authorService{
		repo:      repo,
		documents: documents,
	}
}

func (s *authorService) Create(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" {
		return nil, model.ErrFirstNameRequired
	}
	if lastName == "" {
		return nil, model.ErrLastNameRequired
	}

	// Fast path; the store's unique constraint closes the race
	if _, err := s.repo.FindByName(ctx, firstName, lastName); err == nil {
		return nil, fmt.Errorf("%w: %s %s", model.ErrAuthorAlreadyExists, firstName, lastName)
	} else if !errors.Is(err, model.ErrAuthorNotFound) {
		return nil, fmt.Errorf("failed to check author uniqueness: %w", err)
	}

	documentIDs, err := s.resolveDocuments(ctx, req.Documents)
	if err != nil {
		return nil, err
	}

	// Row and links go in together; a document removed since resolve fails the whole write
	a := &model.Author{FirstName: firstName, LastName: lastName}
	if err := s.repo.Create(ctx, a, documentIDs); err != nil {
		return nil, err
	}

	log.Info().Int64("author_id", a.ID).Int("documents", len(documentIDs)).Msg("author created")
	return s.repo.GetByID(ctx, a.ID)
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, withID(err, id)
	}
	return a, nil
}

func (s *authorService) GetAll(ctx context.Context) ([]*model.Author, error) {
	return s.repo.GetAll(ctx)
}

func (s *authorService) Update(ctx context.Context, id int64, req model.UpdateAuthorRequest) (*model.Author, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, withID(err, id)
	}

	// Resolve everything before the first write
	documentIDs, err := s.resolveDocuments(ctx, req.Documents)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(req.FirstName); v != "" {
		a.FirstName = v
	}
	if v := strings.TrimSpace(req.LastName); v != "" {
		a.LastName = v
	}

	// Additive: existing associations stay
	if err := s.repo.Update(ctx, a, documentIDs); err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			return nil, withID(err, id)
		}
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *authorService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return withID(err, id)
	}

	count, err := s.repo.CountDocuments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: id=%d documents=%d", model.ErrAuthorHasDocuments, id, count)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return withID(err, id)
	}

	log.Info().Int64("author_id", id).Msg("author deleted")
	return nil
}

// resolveDocuments checks that every referenced document exists
func (s *authorService) resolveDocuments(ctx context.Context, refs []shared.EntityRef) ([]int64, error) {
	ids := shared.RefIDs(refs)
	for _, id := range ids {
		if _, err := s.documents.GetByID(ctx, id); err != nil {
			return nil, withID(err, id)
		}
	}
	return ids, nil
}

// withID appends the id to not-found errors, leaves everything else alone
func withID(err error, id int64) error {
	if errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("%w: id=%d", err, id)
	}
	return err
}
