package model

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Pagination tokens are the JSON encoded position of the last returned
// document, base64url encoded without padding so they can be passed in a
// query string as is.

func EncodePaginationToken[T any](position T) (string, error) {
	raw, err := json.Marshal(position)
	if err != nil {
		return "", fmt.Errorf("failed to encode pagination token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func DecodePaginationToken[T any](token string) (*T, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("malformed pagination token: %w", err)
	}
	position := new(T)
	if err := json.Unmarshal(raw, position); err != nil {
		return nil, fmt.Errorf("malformed pagination token: %w", err)
	}
	return position, nil
}
