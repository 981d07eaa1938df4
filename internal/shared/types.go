package shared

// Broker defaults. Task type = "<exchange>:<routing key>", see config.QueueConfig.
const (
	DefaultExchange           = "document-management"
	DefaultAuthorQueue        = "author-delete"
	DefaultAuthorRoutingKey   = "author.delete"
	DefaultDocumentQueue      = "document-delete"
	DefaultDocumentRoutingKey = "document.delete"
)

// Failure policies for the cascade consumers
const (
	FailurePolicyDrop  = "drop"
	FailurePolicyRetry = "retry"
)

// Context keys set by middleware
const (
	ContextKeyRequestID = "request_id"
	ContextKeyUserID    = "user_id"
	ContextKeyRole      = "role"
)

// RoleAdmin is required on the asynchronous delete routes when auth is enabled
const RoleAdmin = "admin"
