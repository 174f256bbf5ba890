package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/NordCoder/Remindus/internal/domain/notification"
	"github.com/NordCoder/Remindus/internal/domain/user"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Usecase runs one reminder tick. It keeps no state between ticks, so two
// overlapping ticks in the same minute both send.
type Usecase struct {
	Users      user.Store
	Sampler    TimeSampler
	Dispatcher *Dispatcher
	Log        *zap.Logger
}

func NewUC(users user.Store, out notification.Transport, clock notification.Clock, log *zap.Logger, maxInFlight int) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{
		Users:      users,
		Sampler:    TimeSampler{Clock: clock},
		Dispatcher: NewDispatcher(out, log, maxInFlight),
		Log:        log,
	}
}

func (u *Usecase) Tick(ctx context.Context) (Outcome, error) {
	start := time.Now()
	sample := u.Sampler.Sample()
	out := Outcome{SampledAt: sample, Failures: make([]Failure, 0)}

	tr := otel.Tracer("reminder.uc")
	ctx, span := tr.Start(ctx, "reminder.tick")
	defer span.End()
	span.SetAttributes(
		attribute.Int("tick.hour", sample.Hour),
		attribute.Int("tick.minute", sample.Minute),
	)

	u.Log.Info("tick started", zap.String("at", sample.String()+" (UTC)"))

	users, err := u.Users.ListAll(ctx)
	if err != nil {
		err = fmt.Errorf("%w: list users: %w", notification.ErrStoreUnavailable, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		out.Duration = time.Since(start)
		return out, err
	}
	out.TotalUsers = len(users)
	span.SetAttributes(attribute.Int("batch.users", len(users)))
	if len(users) == 0 {
		u.Log.Info("no users found")
		out.Duration = time.Since(start)
		return out, nil
	}

	due := FilterDue(users, sample.Hour, sample.Minute)
	out.EligibleCount = len(due)
	span.SetAttributes(attribute.Int("batch.eligible", len(due)))
	if len(due) == 0 {
		out.Duration = time.Since(start)
		return out, nil
	}

	payloads := make([]notification.Payload, 0, len(due))
	for _, du := range due {
		p, cerr := Compose(du)
		if cerr != nil {
			out.FailedCount++
			out.Failures = append(out.Failures, Failure{UserID: du.ID, Reason: cerr.Error(), Err: cerr})
			continue
		}
		payloads = append(payloads, p)
	}

	res := u.Dispatcher.Dispatch(ctx, payloads)
	out.SentCount = res.Sent
	out.FailedCount += res.Failed
	out.Failures = append(out.Failures, res.Failures...)
	out.Duration = time.Since(start)

	span.SetAttributes(
		attribute.Int("batch.sent", out.SentCount),
		attribute.Int("batch.failed", out.FailedCount),
	)
	return out, nil
}
