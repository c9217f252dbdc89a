package media

import (
	"fmt"
	"strings"
)

// KeyLayout maps a media id to the object key that stores it
type KeyLayout interface {
	Key(mediaID string) string
}

// FlatLayout stores media at prefix/<id>
type FlatLayout struct {
	Prefix string
}

func (l FlatLayout) Key(mediaID string) string {
	mediaID = strings.TrimPrefix(mediaID, "/")
	if l.Prefix == "" {
		return mediaID
	}
	return strings.TrimSuffix(l.Prefix, "/") + "/" + mediaID
}

// ShardedLayout stores media git-style under prefix/objects/ab/cdef...,
// sharding on the first ShardLength characters of the dashless id.
type ShardedLayout struct {
	Prefix      string
	ShardLength int
}

func (l ShardedLayout) Key(mediaID string) string {
	id := strings.ReplaceAll(strings.TrimPrefix(mediaID, "/"), "-", "")
	n := l.ShardLength
	if n <= 0 {
		n = 2
	}
	if len(id) <= n {
		return FlatLayout{Prefix: l.Prefix}.Key(mediaID)
	}
	key := fmt.Sprintf("objects/%s/%s", id[:n], id[n:])
	if l.Prefix == "" {
		return key
	}
	return strings.TrimSuffix(l.Prefix, "/") + "/" + key
}

// ParseLayout returns the layout named by name ("flat" or "sharded")
func ParseLayout(name, prefix string) (KeyLayout, error) {
	switch name {
	case "", "flat":
		return FlatLayout{Prefix: prefix}, nil
	case "sharded":
		return ShardedLayout{Prefix: prefix, ShardLength: 2}, nil
	default:
		return nil, fmt.Errorf("unknown media key layout %q", name)
	}
}
