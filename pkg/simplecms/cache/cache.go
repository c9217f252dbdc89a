// Package cache provides SchemaCache implementations for content types.
package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// TTL defaults
const (
	TTLDefault = 10 * time.Minute
)

// PrefixContentType is the key prefix for cached content types.
const PrefixContentType = "cms:content_type:"

func contentTypeKey(prefix string, id uuid.UUID) string {
	return prefix + id.String()
}

func encode(ct *simplecms.ContentType) ([]byte, error) {
	data, err := json.Marshal(ct)
	if err != nil {
		return nil, fmt.Errorf("encode content type %s: %w", ct.ID, err)
	}
	return data, nil
}

func decode(data []byte) (*simplecms.ContentType, error) {
	var ct simplecms.ContentType
	if err := json.Unmarshal(data, &ct); err != nil {
		return nil, fmt.Errorf("decode content type: %w", err)
	}
	return &ct, nil
}
