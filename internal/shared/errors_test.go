package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError_MatchesKind(t *testing.T) {
	err := NewError(ErrNotFound, "author not found")

	assert.Equal(t, "author not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrAlreadyExists)
}

func TestKind(t *testing.T) {
	base := NewError(ErrAttachedEntity, "author has documents")
	wrapped := fmt.Errorf("%w: id=7", base)

	assert.Equal(t, ErrAttachedEntity, Kind(wrapped))
	assert.Nil(t, Kind(errors.New("boom")))
	assert.Nil(t, Kind(nil))
}
