package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmanager-backend/internal/config"
	authorModel "docmanager-backend/internal/domains/author/model"
	documentModel "docmanager-backend/internal/domains/document/model"
	"docmanager-backend/internal/infrastructure/memstore"
	"docmanager-backend/internal/shared"
)

type fakePublisher struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakePublisher) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)

	queue := "default"
	for _, o := range opts {
		if o.Type() == asynq.QueueOpt {
			queue = o.Value().(string)
		}
	}
	return &asynq.TaskInfo{ID: fmt.Sprintf("task-%d", len(f.tasks)), Queue: queue, Type: task.Type()}, nil
}

func optionValue(opts []asynq.Option, typ asynq.OptionType) interface{} {
	for _, o := range opts {
		if o.Type() == typ {
			return o.Value()
		}
	}
	return nil
}

func queueConfig(policy string) config.QueueConfig {
	return config.QueueConfig{
		Exchange:           shared.DefaultExchange,
		AuthorQueue:        shared.DefaultAuthorQueue,
		AuthorRoutingKey:   shared.DefaultAuthorRoutingKey,
		DocumentQueue:      shared.DefaultDocumentQueue,
		DocumentRoutingKey: shared.DefaultDocumentRoutingKey,
		FailurePolicy:      policy,
		MaxRetry:           4,
		TaskTimeoutSeconds: 30,
	}
}

func seed(t *testing.T, store *memstore.Store) (*authorModel.Author, *documentModel.Document) {
	t.Helper()
	ctx := context.Background()

	a := &authorModel.Author{FirstName: "Ada", LastName: "Lovelace"}
	require.NoError(t, store.Authors().Create(ctx, a, nil))
	d := &documentModel.Document{Title: "Notes", Body: "Body", References: []documentModel.Reference{{Reference: "r"}}}
	require.NoError(t, store.Documents().Create(ctx, d, []int64{a.ID}))
	return a, d
}

func TestRequestAuthorDeletion_PublishesSnapshot(t *testing.T) {
	store := memstore.New()
	a, d := seed(t, store)
	pub := &fakePublisher{}
	p := NewProducer(pub, store.Authors(), store.Documents(), queueConfig(shared.FailurePolicyDrop))

	receipt, err := p.RequestAuthorDeletion(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "task-1", receipt.TaskID)
	assert.Equal(t, shared.DefaultAuthorQueue, receipt.Queue)
	assert.Equal(t, []int64{d.ID}, receipt.DocumentIDs)

	require.Len(t, pub.tasks, 1)
	assert.Equal(t, "document-management:author.delete", pub.tasks[0].Type())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(pub.tasks[0].Payload(), &body))
	assert.Equal(t, float64(a.ID), body["id"])
	assert.Equal(t, "Ada", body["firstName"])
	assert.Equal(t, "Lovelace", body["lastName"])
	docs := body["documents"].([]interface{})
	require.Len(t, docs, 1)
	assert.Equal(t, "Notes", docs[0].(map[string]interface{})["title"])

	assert.Equal(t, 0, optionValue(pub.opts[0], asynq.MaxRetryOpt))
	assert.Equal(t, 30*time.Second, optionValue(pub.opts[0], asynq.TimeoutOpt))

	// publishing does not touch the store
	_, err = store.Authors().GetByID(context.Background(), a.ID)
	assert.NoError(t, err)
}

func TestRequestAuthorDeletion_RetryPolicySetsMaxRetry(t *testing.T) {
	store := memstore.New()
	a, _ := seed(t, store)
	pub := &fakePublisher{}
	p := NewProducer(pub, store.Authors(), store.Documents(), queueConfig(shared.FailurePolicyRetry))

	_, err := p.RequestAuthorDeletion(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, optionValue(pub.opts[0], asynq.MaxRetryOpt))
}

func TestRequestAuthorDeletion_Errors(t *testing.T) {
	store := memstore.New()
	a, _ := seed(t, store)

	pub := &fakePublisher{}
	p := NewProducer(pub, store.Authors(), store.Documents(), queueConfig(shared.FailurePolicyDrop))
	_, err := p.RequestAuthorDeletion(context.Background(), 999)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, pub.tasks)

	broken := &fakePublisher{err: errors.New("redis down")}
	p = NewProducer(broken, store.Authors(), store.Documents(), queueConfig(shared.FailurePolicyDrop))
	_, err = p.RequestAuthorDeletion(context.Background(), a.ID)
	assert.ErrorContains(t, err, "redis down")
}

func TestRequestDocumentDeletion(t *testing.T) {
	store := memstore.New()
	a, d := seed(t, store)
	pub := &fakePublisher{}
	p := NewProducer(pub, store.Authors(), store.Documents(), queueConfig(shared.FailurePolicyDrop))

	receipt, err := p.RequestDocumentDeletion(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.DefaultDocumentQueue, receipt.Queue)
	assert.Equal(t, d.ID, receipt.ID)

	require.Len(t, pub.tasks, 1)
	assert.Equal(t, "document-management:document.delete", pub.tasks[0].Type())

	var body documentModel.DocumentResponse
	require.NoError(t, json.Unmarshal(pub.tasks[0].Payload(), &body))
	assert.Equal(t, d.ID, body.ID)
	require.Len(t, body.References, 1)
	require.Len(t, body.Authors, 1)
	assert.Equal(t, a.ID, body.Authors[0].ID)

	_, err = p.RequestDocumentDeletion(context.Background(), 404)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
