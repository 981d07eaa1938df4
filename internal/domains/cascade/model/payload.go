package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedMessage = errors.New("malformed cascade message")

// MessageRef is the only part of an embedded entity the consumer reads
type MessageRef struct {
	ID int64 `json:"id"`
}

// AuthorDeleteMessage reads an author-delete body. The producer sends the
// full author snapshot; unknown fields are ignored.
type AuthorDeleteMessage struct {
	ID        int64        `json:"id"`
	FirstName string       `json:"firstName,omitempty"`
	LastName  string       `json:"lastName,omitempty"`
	Documents []MessageRef `json:"documents"`
}

// DocumentIDs keeps the snapshot order and drops repeats
func (m AuthorDeleteMessage) DocumentIDs() []int64 {
	seen := make(map[int64]struct{}, len(m.Documents))
	ids := make([]int64, 0, len(m.Documents))
	for _, d := range m.Documents {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		ids = append(ids, d.ID)
	}
	return ids
}

// DocumentDeleteMessage reads a document-delete body
type DocumentDeleteMessage struct {
	ID    int64  `json:"id"`
	Title string `json:"title,omitempty"`
}

func DecodeAuthorDelete(data []byte) (AuthorDeleteMessage, error) {
	var m AuthorDeleteMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if m.ID <= 0 {
		return m, fmt.Errorf("%w: missing author id", ErrMalformedMessage)
	}
	for _, d := range m.Documents {
		if d.ID <= 0 {
			return m, fmt.Errorf("%w: invalid document id %d", ErrMalformedMessage, d.ID)
		}
	}
	return m, nil
}

func DecodeDocumentDelete(data []byte) (DocumentDeleteMessage, error) {
	var m DocumentDeleteMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if m.ID <= 0 {
		return m, fmt.Errorf("%w: missing document id", ErrMalformedMessage)
	}
	return m, nil
}

// Receipt is returned to the caller once a delete request has been published
type Receipt struct {
	TaskID      string  `json:"taskId"`
	Queue       string  `json:"queue"`
	ID          int64   `json:"id"`
	DocumentIDs []int64 `json:"documentIds,omitempty"`
}
