package cache

import "github.com/pkg/errors"

var ErrNotFound = errors.New("cache entry not found")
