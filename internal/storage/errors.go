package storage

import "errors"

// ErrNotFound is returned by any lookup whose id does not exist. Handlers
// map it to a 404.
var ErrNotFound = errors.New("record not found")
