package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"docmanager-backend/internal/shared"
)

// FailurePolicy decides what happens to a message whose processing failed
// with anything other than a not-found error. The returned error goes back
// to asynq: nil acknowledges the task, non-nil schedules a retry until
// MaxRetry is exhausted and the task is archived.
type FailurePolicy interface {
	Name() string
	Handle(ctx context.Context, logger zerolog.Logger, task *asynq.Task, err error) error
}

// NewFailurePolicy returns the policy registered under name
func NewFailurePolicy(name string) (FailurePolicy, error) {
	switch name {
	case "", shared.FailurePolicyDrop:
		return DropPolicy{}, nil
	case shared.FailurePolicyRetry:
		return RetryPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown failure policy %q", name)
	}
}

// DropPolicy logs the failure and acknowledges the message
type DropPolicy struct{}

func (DropPolicy) Name() string { return shared.FailurePolicyDrop }

func (DropPolicy) Handle(_ context.Context, logger zerolog.Logger, task *asynq.Task, err error) error {
	logger.Error().
		Err(err).
		Str("task_type", task.Type()).
		Str("policy", shared.FailurePolicyDrop).
		Msg("cascade task failed, message dropped")
	return nil
}

// RetryPolicy hands the error back to asynq; exhausted tasks land in the
// archived set and can be inspected or re-run from there.
type RetryPolicy struct{}

func (RetryPolicy) Name() string { return shared.FailurePolicyRetry }

func (RetryPolicy) Handle(ctx context.Context, logger zerolog.Logger, task *asynq.Task, err error) error {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)

	logger.Error().
		Err(err).
		Str("task_type", task.Type()).
		Str("policy", shared.FailurePolicyRetry).
		Int("retry", retried).
		Int("max_retry", maxRetry).
		Msg("cascade task failed, returning to broker")
	return err
}
