package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"docmanager-backend/internal/shared"
)

type kindMapping struct {
	status int
	code   string
}

var kindStatus = map[error]kindMapping{
	shared.ErrNullValue:      {http.StatusBadRequest, "NULL_VALUE"},
	shared.ErrInvalidValue:   {http.StatusBadRequest, "INVALID_VALUE"},
	shared.ErrAlreadyExists:  {http.StatusConflict, "ALREADY_EXISTS"},
	shared.ErrNotFound:       {http.StatusNotFound, "NOT_FOUND"},
	shared.ErrAttachedEntity: {http.StatusBadRequest, "ATTACHED_ENTITY"},
}

// StatusFor returns the HTTP status and error code for err
func StatusFor(err error) (int, string) {
	if m, ok := kindStatus[shared.Kind(err)]; ok {
		return m.status, m.code
	}
	return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"
}

// FromError translates a domain error into a response.
// Unknown errors are logged and hidden behind a generic 500.
func FromError(c *gin.Context, err error) {
	status, code := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(shared.ContextKeyRequestID)).
			Str("path", c.Request.URL.Path).
			Msg("unhandled error")
		InternalServerError(c, "Internal server error")
		return
	}
	ErrorResponse(c, status, code, err.Error())
}
