package main

import (
	"sort"

	"github.com/rs/zerolog/log"

	"docmanager-backend/internal/infrastructure/queue"
	"docmanager-backend/pkg/container"
)

// initializeHandlers returns the cascade consumers keyed by task type
func initializeHandlers(c *container.Container) queue.Handlers {
	types := make([]string, 0, len(c.TaskHandlers))
	for t := range c.TaskHandlers {
		types = append(types, t)
	}
	sort.Strings(types)

	log.Info().
		Strs("task_types", types).
		Str("author_queue", c.Config.Queue.AuthorQueue).
		Str("document_queue", c.Config.Queue.DocumentQueue).
		Str("failure_policy", c.Config.Queue.FailurePolicy).
		Msg("[Worker] Consumers ready")

	return c.TaskHandlers
}
