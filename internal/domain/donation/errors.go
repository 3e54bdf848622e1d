package donation

import "errors"

var (
	ErrCagnotteNotActive = errors.New("cagnotte does not accept donations")
	ErrInvalidAmount     = errors.New("donation amount must be positive")
)
