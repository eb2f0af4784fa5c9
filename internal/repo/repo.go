package repo

import "errors"

// Sentinel errors the Mongo repositories translate driver errors into, so
// service code never matches on driver types.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)
