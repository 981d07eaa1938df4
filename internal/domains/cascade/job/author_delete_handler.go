package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"docmanager-backend/internal/domains/cascade/model"
	"docmanager-backend/internal/shared"
)

// Deleter is the delete operation of a registry
type Deleter interface {
	Delete(ctx context.Context, id int64) error
}

// AuthorDeleteHandler consumes author-delete messages: every document in the
// snapshot first, then the author. Redelivery is safe because not-found
// targets are skipped.
type AuthorDeleteHandler struct {
	documents Deleter
	authors   Deleter
	policy    FailurePolicy
}

func NewAuthorDeleteHandler(documents, authors Deleter, policy FailurePolicy) *AuthorDeleteHandler {
	if policy == nil {
		policy = DropPolicy{}
	}
	return &AuthorDeleteHandler{
		documents: documents,
		authors:   authors,
		policy:    policy,
	}
}

func (h *AuthorDeleteHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	taskID, _ := asynq.GetTaskID(ctx)

	msg, err := model.DecodeAuthorDelete(task.Payload())
	if err != nil {
		log.Error().
			Err(err).
			Str("task_id", taskID).
			Str("stage", model.StageFailed.String()).
			Msg("Failed to decode author-delete payload")
		return fmt.Errorf("decode author-delete: %v: %w", err, asynq.SkipRetry)
	}

	logger := log.With().Str("task_id", taskID).Int64("author_id", msg.ID).Logger()
	logger.Info().
		Str("stage", model.StageConsuming.String()).
		Ints64("document_ids", msg.DocumentIDs()).
		Msg("Consuming author-delete")

	for _, documentID := range msg.DocumentIDs() {
		err := h.documents.Delete(ctx, documentID)
		switch {
		case err == nil:
			logger.Debug().Int64("document_id", documentID).Msg("document deleted")
		case errors.Is(err, shared.ErrNotFound):
			logger.Info().Int64("document_id", documentID).Msg("document already gone, skipping")
		default:
			logger.Warn().Str("stage", model.StageFailed.String()).Int64("document_id", documentID).Msg("document delete failed")
			return h.policy.Handle(ctx, logger, task, fmt.Errorf("delete document %d: %w", documentID, err))
		}
	}
	logger.Info().Str("stage", model.StageDocumentsDeleted.String()).Msg("documents deleted")

	err = h.authors.Delete(ctx, msg.ID)
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrNotFound):
		logger.Info().Msg("author already gone")
	default:
		logger.Warn().Str("stage", model.StageFailed.String()).Msg("author delete failed")
		return h.policy.Handle(ctx, logger, task, fmt.Errorf("delete author %d: %w", msg.ID, err))
	}

	logger.Info().Str("stage", model.StageAuthorDeleted.String()).Msg("author-delete completed")
	return nil
}
