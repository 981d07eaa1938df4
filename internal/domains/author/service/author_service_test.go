package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmanager-backend/internal/domains/author/model"
	documentModel "docmanager-backend/internal/domains/document/model"
	"docmanager-backend/internal/infrastructure/memstore"
	"docmanager-backend/internal/shared"
)

func setup(t *testing.T) (ServiceInterface, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return NewAuthorService(store.Authors(), store.Documents()), store
}

func seedDocument(t *testing.T, store *memstore.Store, title string, authorIDs ...int64) int64 {
	t.Helper()
	d := &documentModel.Document{
		Title:      title,
		Body:       "body",
		References: []documentModel.Reference{{Reference: "ref"}},
	}
	require.NoError(t, store.Documents().Create(context.Background(), d, authorIDs))
	return d.ID
}

// racingLookup finds the document, then deletes it before the service writes
type racingLookup struct {
	store *memstore.Store
}

func (l racingLookup) GetByID(ctx context.Context, id int64) (*documentModel.Document, error) {
	d, err := l.store.Documents().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return d, l.store.Documents().Delete(ctx, id)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("missing names", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Create(ctx, model.CreateAuthorRequest{FirstName: "", LastName: "Lovelace"})
		assert.ErrorIs(t, err, shared.ErrNullValue)

		_, err = svc.Create(ctx, model.CreateAuthorRequest{FirstName: "Ada", LastName: "   "})
		assert.ErrorIs(t, err, shared.ErrNullValue)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Create(ctx, model.CreateAuthorRequest{FirstName: "Ada", LastName: "Lovelace"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, model.CreateAuthorRequest{FirstName: "Ada", LastName: "Lovelace"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("unknown document", func(t *testing.T) {
		svc, store := setup(t)

		_, err := svc.Create(ctx, model.CreateAuthorRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Documents: []shared.EntityRef{{ID: 99}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Empty(t, store.Snapshot().Authors)
	})

	t.Run("with documents", func(t *testing.T) {
		svc, store := setup(t)
		owner, err := svc.Create(ctx, model.CreateAuthorRequest{FirstName: "Alan", LastName: "Turing"})
		require.NoError(t, err)
		docID := seedDocument(t, store, "Computing Machinery", owner.ID)

		a, err := svc.Create(ctx, model.CreateAuthorRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Documents: []shared.EntityRef{{ID: docID}},
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{docID}, a.DocumentIDs())
	})
}

func TestCreate_DocumentRemovedMidWriteLeavesNoAuthor(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := NewAuthorService(store.Authors(), racingLookup{store: store})
	docID := seedDocument(t, store, "Notes")

	_, err := svc.Create(ctx, model.CreateAuthorRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Documents: []shared.EntityRef{{ID: docID}},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, store.Snapshot().Authors)

	// retry is not blocked by a half-written row
	a, err := svc.Create(ctx, model.CreateAuthorRequest{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	assert.Empty(t, a.Documents)
}

func TestUpdate_DocumentRemovedMidWriteKeepsName(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := NewAuthorService(store.Authors(), racingLookup{store: store})
	a, err := svc.Create(ctx, model.CreateAuthorRequest{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	docID := seedDocument(t, store, "Notes")

	_, err = svc.Update(ctx, a.ID, model.UpdateAuthorRequest{
		FirstName: "Augusta",
		Documents: []shared.EntityRef{{ID: docID}},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	got, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Empty(t, got.Documents)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	assert.Contains(t, err.Error(), "id=7")
}

func TestGetAll(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = svc.Create(ctx, model.CreateAuthorRequest{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.CreateAuthorRequest{FirstName: "Alan", LastName: "Turing"})
	require.NoError(t, err)

	all, err = svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdate_IsAdditive(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	x, err := svc.Create(ctx, model.CreateAuthorRequest{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	d1 := seedDocument(t, store, "D1", x.ID)
	helper, err := svc.Create(ctx, model.CreateAuthorRequest{FirstName: "Alan", LastName: "Turing"})
	require.NoError(t, err)
	d2 := seedDocument(t, store, "D2", helper.ID)

	updated, err := svc.Update(ctx, x.ID, model.UpdateAuthorRequest{Documents: []shared.EntityRef{{ID: d2}}})
	require.NoError(t, err)
	assert.Equal(t, []int64{d1, d2}, updated.DocumentIDs())

	// the document keeps its previous author too
	doc, err := store.Documents().GetByID(ctx, d2)
	require.NoError(t, err)
	assert.Equal(t, []int64{x.ID, helper.ID}, doc.AuthorIDs())
}

func TestUpdate_Fields(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, model.CreateAuthorRequest{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, a.ID, model.UpdateAuthorRequest{FirstName: "Augusta"})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)

	_, err = svc.Update(ctx, 404, model.UpdateAuthorRequest{FirstName: "x"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.Update(ctx, a.ID, model.UpdateAuthorRequest{Documents: []shared.EntityRef{{ID: 55}}})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	again, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", again.FirstName)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("without documents", func(t *testing.T) {
		svc, _ := setup(t)
		a, err := svc.Create(ctx, model.CreateAuthorRequest{FirstName: "Ada", LastName: "Lovelace"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, a.ID))

		_, err = svc.GetByID(ctx, a.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("with documents attached", func(t *testing.T) {
		svc, store := setup(t)
		a, err := svc.Create(ctx, model.CreateAuthorRequest{FirstName: "Ada", LastName: "Lovelace"})
		require.NoError(t, err)
		seedDocument(t, store, "D1", a.ID)
		before, err := svc.GetByID(ctx, a.ID)
		require.NoError(t, err)

		err = svc.Delete(ctx, a.ID)
		assert.ErrorIs(t, err, shared.ErrAttachedEntity)

		after, err := svc.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("unknown", func(t *testing.T) {
		svc, _ := setup(t)
		assert.ErrorIs(t, svc.Delete(ctx, 3), shared.ErrNotFound)
	})
}
