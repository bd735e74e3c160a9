package middleware

import (
	"strings"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewCors,
	NewLogger,
	NewRecovery,
	NewTraceEntry,
	NewRefreshLimit,
	NewResponse,
)

// 這些路徑不做 tracing / log
func skipObservability(endpoint string) bool {
	return strings.HasPrefix(endpoint, "/swagger") ||
		strings.HasPrefix(endpoint, "/metrics") ||
		strings.HasPrefix(endpoint, "/version") ||
		strings.HasPrefix(endpoint, "/health") ||
		strings.HasPrefix(endpoint, "/debug/pprof")
}
