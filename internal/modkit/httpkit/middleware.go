package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"fadet/internal/platform/config"
	"fadet/internal/platform/net/middleware"
)

// CommonStack returns the baseline middleware slice for an API mount.
// Allowed origins, the request timeout, the slow-request threshold and the
// in-flight cap are tunable per deployment via cfg
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.DossierScope,

		// safety
		middleware.RecoverJSON,
		middleware.AllowContentType("application/json"),

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: cfg.MayDuration("SLOW_REQUEST", 2*time.Second),
		}),

		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: cfg.MayCSV("CORS_ORIGINS", nil),
		}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(cfg.MayDuration("HTTP_TIMEOUT", 30*time.Second)),
	}

	if limit := cfg.MayInt("MAX_INFLIGHT", 0); limit > 0 {
		stack = append(stack, middleware.Throttle(limit))
	}
	return stack
}
