package cache

import (
	"fmt"
	"time"
)

const (
	AuthorTTL   = 10 * time.Minute
	DocumentTTL = 10 * time.Minute
)

// Key patterns
const (
	AuthorListKey      = "author:list"
	DocumentListKey    = "document:list"
	AuthorKeyPattern   = "author:*"
	DocumentKeyPattern = "document:*"
)

func AuthorKey(id int64) string {
	return fmt.Sprintf("author:%d", id)
}

func DocumentKey(id int64) string {
	return fmt.Sprintf("document:%d", id)
}
