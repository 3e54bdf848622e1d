package errorhandler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/cagnotte/cagnotte-api/internal/middleware"
	"github.com/cagnotte/cagnotte-api/internal/pkg/response"
)

// Internal logs an unexpected error with request context and sends a 500.
// Domain errors (not found, invalid transition, validation) are handled by
// the handlers directly; this is for persistence and programming failures.
func Internal(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	log.Error().
		Str("request_id", middleware.GetRequestID(ctx)).
		Err(err).
		Msg(msg)

	response.InternalError(w)
}
