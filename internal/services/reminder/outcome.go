package reminder

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Outcome summarizes one tick. A tick aborted before dispatch carries zero
// counts.
type Outcome struct {
	SampledAt     Sample
	TotalUsers    int
	EligibleCount int
	SentCount     int
	FailedCount   int
	Failures      []Failure
	Duration      time.Duration
}

func (o Outcome) Summary() string {
	return fmt.Sprintf("at=%s users=%d eligible=%d sent=%d failed=%d",
		o.SampledAt, o.TotalUsers, o.EligibleCount, o.SentCount, o.FailedCount)
}

func (o Outcome) fields() []zap.Field {
	return []zap.Field{
		zap.String("sampled_at", o.SampledAt.String()),
		zap.Int("users", o.TotalUsers),
		zap.Int("eligible", o.EligibleCount),
		zap.Int("sent", o.SentCount),
		zap.Int("failed", o.FailedCount),
		zap.Duration("elapsed", o.Duration),
	}
}

// Report writes the tick summary. A tick-level error is logged as an error
// marker next to the (zero) counts; per-user failures follow at warn level.
func Report(log *zap.Logger, o Outcome, err error) {
	if err != nil {
		log.Error("tick failed", append(o.fields(), zap.Error(err))...)
		return
	}
	for _, f := range o.Failures {
		log.Warn("notification not delivered",
			zap.String("user_id", f.UserID), zap.String("reason", f.Reason))
	}
	switch {
	case o.EligibleCount == 0:
		log.Debug("tick finished, nobody due", o.fields()...)
	case o.FailedCount > 0:
		log.Warn("tick finished with failures", o.fields()...)
	default:
		log.Info("tick finished", o.fields()...)
	}
}
