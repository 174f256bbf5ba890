package reminder

import (
	"context"
	"fmt"
	"time"

	config "github.com/NordCoder/Remindus/internal/config/reminder"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

type Runner struct {
	Log *zap.Logger
	UC  *Usecase
	Cfg *config.SchedCfg

	mTicks    *prometheus.CounterVec
	mUsers    prometheus.Counter
	mEligible prometheus.Counter
	mSent     prometheus.Counter
	mFailed   prometheus.Counter
	mLoopDur  prometheus.Histogram
}

// New registers the runner metrics on reg, or on the default registerer when
// reg is nil.
func New(log *zap.Logger, uc *Usecase, cfg *config.SchedCfg, reg prometheus.Registerer) *Runner {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if log == nil {
		log = zap.NewNop()
	}
	f := promauto.With(reg)
	return &Runner{
		Log: log,
		UC:  uc,
		Cfg: cfg,
		mTicks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "reminder_ticks_total", Help: "Reminder ticks by result",
		}, []string{"result"}),
		mUsers: f.NewCounter(prometheus.CounterOpts{
			Name: "reminder_users_scanned_total", Help: "User records read from the store",
		}),
		mEligible: f.NewCounter(prometheus.CounterOpts{
			Name: "reminder_users_due_total", Help: "Users due for a reminder",
		}),
		mSent: f.NewCounter(prometheus.CounterOpts{
			Name: "reminder_push_sent_total", Help: "Reminders accepted by the transport",
		}),
		mFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "reminder_push_failed_total", Help: "Reminders the transport rejected",
		}),
		mLoopDur: f.NewHistogram(prometheus.HistogramOpts{
			Name: "reminder_tick_duration_seconds", Help: "Reminder tick duration",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RunOnce executes a single tick and returns its tick-level error, if any.
// Panics are converted into errors so a trigger can always schedule the next
// tick.
func (r *Runner) RunOnce(ctx context.Context) (out Outcome, err error) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("tick panic: %v", p)
		}
		r.observe(out, err, time.Since(start))
		Report(r.Log, out, err)
	}()
	return r.UC.Tick(ctx)
}

func (r *Runner) observe(out Outcome, err error, took time.Duration) {
	r.mLoopDur.Observe(took.Seconds())
	if err != nil {
		r.mTicks.WithLabelValues("failed").Inc()
		return
	}
	r.mTicks.WithLabelValues("ok").Inc()
	r.mUsers.Add(float64(out.TotalUsers))
	r.mEligible.Add(float64(out.EligibleCount))
	r.mSent.Add(float64(out.SentCount))
	r.mFailed.Add(float64(out.FailedCount))
}

// Run ticks immediately and then on every Cfg.Tick until ctx is done. Tick
// failures are reported and never stop the loop. A tick that outlives the
// interval delays the next one; ticks are never run concurrently from here.
func (r *Runner) Run(ctx context.Context) error {
	interval := r.Cfg.Tick
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	_, _ = r.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.Log.Info("runner stopping")
			return ctx.Err()
		case <-ticker.C:
			_, _ = r.RunOnce(ctx)
		}
	}
}
