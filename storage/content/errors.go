package content

import "errors"

// ErrNotFound is returned when a document does not exist in its collection.
var ErrNotFound = errors.New("document not found")
