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

// DocumentDeleteHandler consumes document-delete messages; authors are untouched
type DocumentDeleteHandler struct {
	documents Deleter
	policy    FailurePolicy
}

func NewDocumentDeleteHandler(documents Deleter, policy FailurePolicy) *DocumentDeleteHandler {
	if policy == nil {
		policy = DropPolicy{}
	}
	return &DocumentDeleteHandler{
		documents: documents,
		policy:    policy,
	}
}

func (h *DocumentDeleteHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	taskID, _ := asynq.GetTaskID(ctx)

	msg, err := model.DecodeDocumentDelete(task.Payload())
	if err != nil {
		log.Error().
			Err(err).
			Str("task_id", taskID).
			Str("stage", model.StageFailed.String()).
			Msg("Failed to decode document-delete payload")
		return fmt.Errorf("decode document-delete: %v: %w", err, asynq.SkipRetry)
	}

	logger := log.With().Str("task_id", taskID).Int64("document_id", msg.ID).Logger()
	logger.Info().Str("stage", model.StageConsuming.String()).Msg("Consuming document-delete")

	err = h.documents.Delete(ctx, msg.ID)
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrNotFound):
		logger.Info().Msg("document already gone")
	default:
		logger.Warn().Str("stage", model.StageFailed.String()).Msg("document delete failed")
		return h.policy.Handle(ctx, logger, task, fmt.Errorf("delete document %d: %w", msg.ID, err))
	}

	logger.Info().Str("stage", model.StageDocumentsDeleted.String()).Msg("document-delete completed")
	return nil
}
