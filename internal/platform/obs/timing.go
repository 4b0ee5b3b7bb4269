package obs

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Time starts a timer for op and returns a func that logs its duration and
// the error, if any, pointed to by errp. Use as:
//
//	defer obs.Time(ctx, "routes.Create")(&err)
func Time(ctx context.Context, op string) func(errp *error) {
	start := time.Now()
	reqID := middleware.GetReqID(ctx)

	return func(errp *error) {
		fields := []zap.Field{
			zap.String("req_id", reqID),
			zap.String("op", op),
			zap.Int64("dur_ms", time.Since(start).Milliseconds()),
		}

		if errp != nil && *errp != nil {
			zap.L().Warn("operation failed", append(fields, zap.Error(*errp))...)
			return
		}
		zap.L().Debug("operation done", fields...)
	}
}
