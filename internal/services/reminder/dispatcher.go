package reminder

import (
	"context"
	"errors"
	"fmt"

	"github.com/NordCoder/Remindus/internal/domain/notification"
	"github.com/NordCoder/Remindus/internal/obs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Failure is one undelivered reminder.
type Failure struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

type DispatchResult struct {
	Sent     int
	Failed   int
	Failures []Failure
}

// Dispatcher fans payloads out to the transport. Every send runs to a
// terminal state; a failed send never cancels the others.
type Dispatcher struct {
	Out notification.Transport
	Log *zap.Logger

	// MaxInFlight caps concurrent sends; zero means no cap.
	MaxInFlight int
}

func NewDispatcher(out notification.Transport, log *zap.Logger, maxInFlight int) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{Out: out, Log: log, MaxInFlight: maxInFlight}
}

func (d *Dispatcher) Dispatch(ctx context.Context, payloads []notification.Payload) DispatchResult {
	res := DispatchResult{Failures: make([]Failure, 0)}
	if len(payloads) == 0 {
		return res
	}

	tr := otel.Tracer("reminder.dispatch")
	errs := make([]error, len(payloads))

	var g errgroup.Group
	if d.MaxInFlight > 0 {
		g.SetLimit(d.MaxInFlight)
	}
	for i, p := range payloads {
		g.Go(func() error {
			errs[i] = d.send(ctx, tr, p)
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err == nil {
			res.Sent++
			continue
		}
		res.Failed++
		res.Failures = append(res.Failures, Failure{
			UserID: payloads[i].UserID,
			Reason: reason(err),
			Err:    err,
		})
	}
	return res
}

func (d *Dispatcher) send(ctx context.Context, tr trace.Tracer, p notification.Payload) (err error) {
	ctx, span := tr.Start(ctx, "reminder.send",
		trace.WithAttributes(attribute.String("user.id", p.UserID)),
	)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = &notification.DeliveryError{UserID: p.UserID, Err: fmt.Errorf("transport panic: %v", r)}
		}
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("send.status", "error"))
			obs.WithTrace(ctx, d.Log).Warn("send failed",
				zap.String("user_id", p.UserID), zap.Error(err))
			return
		}
		span.SetAttributes(attribute.String("send.status", "ok"))
	}()

	d.Log.Debug("sending notification", zap.String("user_id", p.UserID))
	if sendErr := d.Out.Send(ctx, p.TargetToken, p.Title, p.Body); sendErr != nil {
		return &notification.DeliveryError{UserID: p.UserID, Err: sendErr}
	}
	return nil
}

// reason strips the delivery wrapper so reports carry the transport's text.
func reason(err error) string {
	var de *notification.DeliveryError
	if errors.As(err, &de) && de.Err != nil {
		return de.Err.Error()
	}
	return err.Error()
}
