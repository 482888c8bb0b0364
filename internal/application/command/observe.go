package command

import (
	"context"
	"time"

	"github.com/tutorbook/tutorbook/pkg/logger"
)

// observe starts timing op; the returned func logs its outcome through the
// logger carried by ctx.
func observe(ctx context.Context, op string) func(err error, fields ...logger.Field) {
	start := time.Now()
	log := logger.FromContext(ctx).With(logger.Component("command"), logger.Operation(op))
	return func(err error, fields ...logger.Field) {
		fields = append(fields, logger.Latency(time.Since(start)))
		if err != nil {
			log.Debug("command rejected", append(fields, logger.Err(err))...)
			return
		}
		log.Debug("command handled", fields...)
	}
}
