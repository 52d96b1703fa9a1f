package userdb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNoRowsAffected indicates an UPDATE or DELETE matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
