package utils

import (
	"fmt"
	"os"
	"strconv"
)

// GetEnvVariable đọc env, trả về defaultValue nếu không set
func GetEnvVariable(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// ParseID parses a positive int64 path parameter
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
