package cache

import (
	"encoding/json"
	"strings"
)

// Key identifies a cached read: the resource path plus its query parameters.
type Key struct {
	path   string
	params string
}

func NewKey(path string, params ...any) Key {
	if len(params) == 0 {
		return Key{path: path}
	}
	b, err := json.Marshal(params)
	if err != nil {
		// params are plain values built by the query layer
		panic("cache: unencodable key params for " + path + ": " + err.Error())
	}
	return Key{path: path, params: string(b)}
}

func (k Key) Path() string {
	return k.path
}

func (k Key) String() string {
	if k.params == "" {
		return k.path
	}
	return k.path + " " + k.params
}

// HasPrefix matches on the path component only.
func (k Key) HasPrefix(prefix string) bool {
	return strings.HasPrefix(k.path, prefix)
}

func (k Key) IsZero() bool {
	return k.path == ""
}
