package pipes

import (
	"log/slog"
	"time"

	"github.com/vitalvas/strada/dispatch"
)

// accessLogStartKey stores the dispatch start time between the two
// halves of the pipe set.
const accessLogStartKey = "pipes.accesslog_start"

// AccessLogConfig configures the AccessLog pipe set.
type AccessLogConfig struct {
	// Logger receives one record per dispatch. Defaults to slog.Default.
	Logger *slog.Logger

	// SlowThreshold upgrades the record to warn level when the dispatch
	// takes at least this long. Zero disables the check.
	SlowThreshold time.Duration

	// ExcludeActions lists action ids that are never logged, typically
	// health checks.
	ExcludeActions []string
}

// AccessLog returns a pipe set logging one structured record per
// dispatch: action id, method, path, status and duration, plus the
// request id when the RequestID pipe ran earlier in the chain.
//
// The after half never replaces the response; a short-circuited
// before-chain (a Terminal before this set's before half runs) produces
// no record, matching where the set sits in the composition order.
func AccessLog(cfg AccessLogConfig) dispatch.PipeSet {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	excluded := make(map[string]bool, len(cfg.ExcludeActions))
	for _, id := range cfg.ExcludeActions {
		excluded[id] = true
	}

	return dispatch.PipeSet{
		Name: "access_log",
		Before: []dispatch.Pipe{
			func(c *dispatch.Ctx) dispatch.Result {
				c.Set(accessLogStartKey, time.Now())
				return dispatch.Continue()
			},
		},
		After: []dispatch.Pipe{
			func(c *dispatch.Ctx) dispatch.Result {
				if excluded[c.ActionID()] {
					return dispatch.Continue()
				}

				var elapsed time.Duration
				if v, ok := c.Get(accessLogStartKey); ok {
					if start, ok := v.(time.Time); ok {
						elapsed = time.Since(start)
					}
				}

				status := 0
				if resp, ok := c.Response(); ok {
					status = resp.Status
				}

				attrs := []slog.Attr{
					slog.String("action", c.ActionID()),
					slog.String("method", c.Request().Method),
					slog.String("path", c.Request().Path),
					slog.Int("status", status),
					slog.Duration("duration", elapsed),
				}
				if id := CtxRequestID(c); id != "" {
					attrs = append(attrs, slog.String("request_id", id))
				}

				level := slog.LevelInfo
				msg := "request"
				if cfg.SlowThreshold > 0 && elapsed >= cfg.SlowThreshold {
					level = slog.LevelWarn
					msg = "slow request"
				}

				logger.LogAttrs(c.Context(), level, msg, attrs...)
				return dispatch.Continue()
			},
		},
	}
}
