package cagnotte

import "errors"

var (
	ErrCagnotteNotFound = errors.New("cagnotte not found")
	ErrNotOwner         = errors.New("not the cagnotte owner")
	ErrInvalidStatus    = errors.New("operation not allowed in current cagnotte status")
)
