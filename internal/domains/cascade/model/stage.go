package model

// Stage of a delete request, logged as it moves through the workflow:
//
//	Requested -> Enqueued -> Consuming -> DocumentsDeleted -> AuthorDeleted
//	                          Consuming -> Failed
//
// Document-only requests finish at DocumentsDeleted.
type Stage string

const (
	StageRequested        Stage = "requested"
	StageEnqueued         Stage = "enqueued"
	StageConsuming        Stage = "consuming"
	StageDocumentsDeleted Stage = "documents_deleted"
	StageAuthorDeleted    Stage = "author_deleted"
	StageFailed           Stage = "failed"
)

func (s Stage) String() string { return string(s) }
