package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"docmanager-backend/internal/config"
	authorModel "docmanager-backend/internal/domains/author/model"
	"docmanager-backend/internal/domains/cascade/model"
	documentModel "docmanager-backend/internal/domains/document/model"
	"docmanager-backend/internal/shared"
)

// Publisher is satisfied by *asynq.Client
type Publisher interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type AuthorReader interface {
	GetByID(ctx context.Context, id int64) (*authorModel.Author, error)
}

type DocumentReader interface {
	GetByID(ctx context.Context, id int64) (*documentModel.Document, error)
}

// ProducerInterface publishes asynchronous delete requests
type ProducerInterface interface {
	RequestAuthorDeletion(ctx context.Context, authorID int64) (*model.Receipt, error)
	RequestDocumentDeletion(ctx context.Context, documentID int64) (*model.Receipt, error)
}

type producer struct {
	publisher Publisher
	authors   AuthorReader
	documents DocumentReader
	queue     config.QueueConfig
}

func NewProducer(publisher Publisher, authors AuthorReader, documents DocumentReader, queue config.QueueConfig) ProducerInterface {
	return &producer{
		publisher: publisher,
		authors:   authors,
		documents: documents,
		queue:     queue,
	}
}

// RequestAuthorDeletion snapshots the author with its current documents and
// publishes it. Returns as soon as the broker accepted the task.
func (p *producer) RequestAuthorDeletion(ctx context.Context, authorID int64) (*model.Receipt, error) {
	logger := log.With().Int64("author_id", authorID).Logger()
	logger.Info().Str("stage", model.StageRequested.String()).Msg("author deletion requested")

	a, err := p.authors.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(a.ToResponse())
	if err != nil {
		return nil, fmt.Errorf("marshal author-delete payload: %w", err)
	}

	task := asynq.NewTask(p.queue.AuthorTaskType(), payload)
	info, err := p.publisher.EnqueueContext(ctx, task, p.options(p.queue.AuthorQueue)...)
	if err != nil {
		logger.Error().Err(err).Msg("failed to publish author-delete task")
		return nil, fmt.Errorf("publish author-delete task: %w", err)
	}

	logger.Info().
		Str("stage", model.StageEnqueued.String()).
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Ints64("document_ids", a.DocumentIDs()).
		Msg("author-delete task enqueued")

	return &model.Receipt{
		TaskID:      info.ID,
		Queue:       info.Queue,
		ID:          a.ID,
		DocumentIDs: a.DocumentIDs(),
	}, nil
}

func (p *producer) RequestDocumentDeletion(ctx context.Context, documentID int64) (*model.Receipt, error) {
	logger := log.With().Int64("document_id", documentID).Logger()
	logger.Info().Str("stage", model.StageRequested.String()).Msg("document deletion requested")

	d, err := p.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(d.ToResponse())
	if err != nil {
		return nil, fmt.Errorf("marshal document-delete payload: %w", err)
	}

	task := asynq.NewTask(p.queue.DocumentTaskType(), payload)
	info, err := p.publisher.EnqueueContext(ctx, task, p.options(p.queue.DocumentQueue)...)
	if err != nil {
		logger.Error().Err(err).Msg("failed to publish document-delete task")
		return nil, fmt.Errorf("publish document-delete task: %w", err)
	}

	logger.Info().
		Str("stage", model.StageEnqueued.String()).
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("document-delete task enqueued")

	return &model.Receipt{
		TaskID: info.ID,
		Queue:  info.Queue,
		ID:     d.ID,
	}, nil
}

// options - the drop policy never returns an error from the handler, so
// retries only matter for the retry policy
func (p *producer) options(queue string) []asynq.Option {
	maxRetry := 0
	if p.queue.FailurePolicy == shared.FailurePolicyRetry {
		maxRetry = p.queue.MaxRetry
	}

	opts := []asynq.Option{
		asynq.Queue(queue),
		asynq.MaxRetry(maxRetry),
	}
	if p.queue.TaskTimeoutSeconds > 0 {
		opts = append(opts, asynq.Timeout(time.Duration(p.queue.TaskTimeoutSeconds)*time.Second))
	}
	return opts
}
