package persistence

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrLoad = errors.New("load document failed")
	ErrSave = errors.New("save document failed")
)
