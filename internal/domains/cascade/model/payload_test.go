package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAuthorDelete(t *testing.T) {
	body := `{"id":7,"firstName":"Ada","lastName":"Lovelace","documents":[{"id":1,"title":"t","body":"b"},{"id":2},{"id":1}]}`

	m, err := DecodeAuthorDelete([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, int64(7), m.ID)
	assert.Equal(t, []int64{1, 2}, m.DocumentIDs())
}

func TestDecodeAuthorDelete_Malformed(t *testing.T) {
	for _, body := range []string{`not json`, `{}`, `{"id":0}`, `{"id":3,"documents":[{"id":-1}]}`} {
		_, err := DecodeAuthorDelete([]byte(body))
		assert.ErrorIs(t, err, ErrMalformedMessage, body)
	}
}

func TestDecodeDocumentDelete(t *testing.T) {
	m, err := DecodeDocumentDelete([]byte(`{"id":4,"title":"x","references":[],"authors":[{"id":1}]}`))
	require.NoError(t, err)
	assert.Equal(t, int64(4), m.ID)

	_, err = DecodeDocumentDelete([]byte(`{"title":"x"}`))
	assert.ErrorIs(t, err, ErrMalformedMessage)
}
