package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmanager-backend/internal/config"
	authorModel "docmanager-backend/internal/domains/author/model"
	cascadeService "docmanager-backend/internal/domains/cascade/service"
	"docmanager-backend/internal/domains/document/model"
	"docmanager-backend/internal/domains/document/service"
	"docmanager-backend/internal/infrastructure/memstore"
	"docmanager-backend/internal/shared"
)

type stubPublisher struct {
	tasks []*asynq.Task
}

func (p *stubPublisher) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	p.tasks = append(p.tasks, task)
	return &asynq.TaskInfo{ID: "task-" + strconv.Itoa(len(p.tasks)), Queue: shared.DefaultDocumentQueue, Type: task.Type()}, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func setupRouter(t *testing.T) (*gin.Engine, *memstore.Store, *stubPublisher) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	pub := &stubPublisher{}
	producer := cascadeService.NewProducer(pub, store.Authors(), store.Documents(), config.QueueConfig{
		Exchange:           shared.DefaultExchange,
		AuthorQueue:        shared.DefaultAuthorQueue,
		AuthorRoutingKey:   shared.DefaultAuthorRoutingKey,
		DocumentQueue:      shared.DefaultDocumentQueue,
		DocumentRoutingKey: shared.DefaultDocumentRoutingKey,
		FailurePolicy:      shared.FailurePolicyDrop,
	})
	h := NewDocumentHandler(service.NewDocumentService(store.Documents(), store.Authors()), producer)

	r := gin.New()
	docs := r.Group("/api/v1/documents")
	docs.POST("", h.Create)
	docs.GET("", h.GetAll)
	docs.GET("/:id", h.GetByID)
	docs.PUT("/:id", h.Update)
	docs.DELETE("/:id", h.Delete)
	docs.DELETE("/queue/:id", h.DeleteViaQueue)
	return r, store, pub
}

func call(t *testing.T, r *gin.Engine, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func addAuthor(t *testing.T, store *memstore.Store, first, last string) int64 {
	t.Helper()
	a := &authorModel.Author{FirstName: first, LastName: last}
	require.NoError(t, store.Authors().Create(context.Background(), a, nil))
	return a.ID
}

func createBody(authorIDs ...int64) gin.H {
	authors := make([]gin.H, 0, len(authorIDs))
	for _, id := range authorIDs {
		authors = append(authors, gin.H{"id": id})
	}
	return gin.H{
		"title":      "The Evolution of the Internet",
		"body":       "From ARPANET to the web.",
		"references": []gin.H{{"reference": "Leiner, B. M. et al. (2009)."}},
		"authors":    authors,
	}
}

func path(id int64) string {
	return "/api/v1/documents/" + strconv.FormatInt(id, 10)
}

func TestDocumentHandler_CreateAndGet(t *testing.T) {
	r, store, _ := setupRouter(t)
	authorID := addAuthor(t, store, "Daniyal", "Nagori")

	code, env := call(t, r, http.MethodPost, "/api/v1/documents", createBody(authorID))
	require.Equal(t, http.StatusCreated, code)

	var doc model.DocumentResponse
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.NotZero(t, doc.ID)
	require.Len(t, doc.References, 1)
	require.Len(t, doc.Authors, 1)
	assert.Equal(t, "Nagori", doc.Authors[0].LastName)

	code, env = call(t, r, http.MethodGet, path(doc.ID), nil)
	require.Equal(t, http.StatusOK, code)

	code, env = call(t, r, http.MethodGet, "/api/v1/documents", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, env.Meta.Total)

	code, _ = call(t, r, http.MethodGet, path(77), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDocumentHandler_CreateRejects(t *testing.T) {
	r, store, _ := setupRouter(t)
	authorID := addAuthor(t, store, "Daniyal", "Nagori")

	body := createBody(authorID)
	body["body"] = strings.Repeat("x", model.MaxBodyLength+1)
	code, env := call(t, r, http.MethodPost, "/api/v1/documents", body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_VALUE", env.Error.Code)

	code, env = call(t, r, http.MethodPost, "/api/v1/documents", createBody())
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "NULL_VALUE", env.Error.Code)

	code, env = call(t, r, http.MethodPost, "/api/v1/documents", createBody(authorID, 404))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	body = createBody(authorID)
	body["authors"] = []gin.H{{"id": 0}}
	code, env = call(t, r, http.MethodPost, "/api/v1/documents", body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestDocumentHandler_UpdateReplacesAuthors(t *testing.T) {
	r, store, _ := setupRouter(t)
	first := addAuthor(t, store, "Daniyal", "Nagori")
	second := addAuthor(t, store, "Mohsin", "Khalid")

	_, env := call(t, r, http.MethodPost, "/api/v1/documents", createBody(first))
	var doc model.DocumentResponse
	require.NoError(t, json.Unmarshal(env.Data, &doc))

	code, env := call(t, r, http.MethodPut, path(doc.ID), gin.H{"title": "Renamed", "authors": []gin.H{{"id": second}}})
	require.Equal(t, http.StatusOK, code)

	var updated model.DocumentResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, doc.Body, updated.Body)
	require.Len(t, updated.Authors, 1)
	assert.Equal(t, second, updated.Authors[0].ID)

	a, err := store.Authors().GetByID(context.Background(), first)
	require.NoError(t, err)
	assert.Empty(t, a.Documents)
}

func TestDocumentHandler_Delete(t *testing.T) {
	r, store, pub := setupRouter(t)
	authorID := addAuthor(t, store, "Daniyal", "Nagori")

	_, env := call(t, r, http.MethodPost, "/api/v1/documents", createBody(authorID))
	var doc model.DocumentResponse
	require.NoError(t, json.Unmarshal(env.Data, &doc))

	code, env := call(t, r, http.MethodDelete, "/api/v1/documents/queue/"+strconv.FormatInt(doc.ID, 10), nil)
	require.Equal(t, http.StatusAccepted, code)
	require.Len(t, pub.tasks, 1)
	assert.Equal(t, "document-management:document.delete", pub.tasks[0].Type())

	code, _ = call(t, r, http.MethodDelete, path(doc.ID), nil)
	assert.Equal(t, http.StatusOK, code)

	a, err := store.Authors().GetByID(context.Background(), authorID)
	require.NoError(t, err)
	assert.Empty(t, a.Documents)

	code, _ = call(t, r, http.MethodDelete, path(doc.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)
}
