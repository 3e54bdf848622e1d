package middleware

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/cagnotte/cagnotte-api/internal/pkg/response"
)

// RateLimit returns middleware limiting requests per client IP using a
// fixed window counter in Redis. Without a Redis client the limiter is a
// pass-through. Redis errors fail open.
func RateLimit(client *redis.Client, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := "ratelimit:" + r.URL.Path + ":" + ClientIP(r)

			count, err := client.Incr(r.Context(), key).Result()
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Rate limit check failed")
				next.ServeHTTP(w, r)
				return
			}

			if count == 1 {
				client.Expire(r.Context(), key, window)
			}

			if count > int64(limit) {
				response.TooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
