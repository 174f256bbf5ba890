package main

import (
	"context"
	"fmt"

	config "github.com/NordCoder/Remindus/internal/config/reminder"
	"github.com/NordCoder/Remindus/internal/domain/notification"
	"github.com/NordCoder/Remindus/internal/obs"
	"github.com/NordCoder/Remindus/internal/obs/retry"
	kafkaRepo "github.com/NordCoder/Remindus/internal/repository/kafka"
	pg "github.com/NordCoder/Remindus/internal/repository/postgres"
	"github.com/NordCoder/Remindus/internal/transport/fcm"
	"github.com/NordCoder/Remindus/internal/transport/logpush"

	"go.uber.org/zap"
)

type app struct {
	cfg     *config.Config
	log     *zap.Logger
	otel    *obs.OTel
	db      *pg.DB
	out     notification.Transport
	closers []func() error
}

func bootstrap(ctx context.Context, cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	l, err := obs.NewLogger(cfg.AsLoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("logger init: %w", err)
	}
	a := &app{cfg: cfg, log: l}

	a.otel, err = obs.SetupOTel(ctx, cfg.AsOTELConfig())
	if err != nil {
		l.Warn("otel init", zap.Error(err))
	}

	a.db, err = retry.DoValue(ctx, func() (*pg.DB, error) {
		return pg.NewDB(ctx, cfg.DB)
	}, retry.StartupPolicy("postgres", l))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("db connect: %w", err)
	}
	l.Info("db connected")

	a.out, err = a.initTransport(ctx)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("push transport: %w", err)
	}
	return a, nil
}

func (a *app) initTransport(ctx context.Context) (notification.Transport, error) {
	push := a.cfg.Push
	switch push.Driver {
	case config.DriverFCM:
		c, err := fcm.New(fcm.Config{
			BaseURL:           push.FCM.BaseURL,
			ProjectID:         push.FCM.ProjectID,
			AccessToken:       push.FCM.AccessToken,
			Timeout:           push.FCM.Timeout,
			RequestsPerSecond: push.FCM.RequestsPerSecond,
			Burst:             push.FCM.Burst,
		})
		if err != nil {
			return nil, err
		}
		a.log.Info("push transport ready", zap.String("driver", push.Driver), zap.String("project", push.FCM.ProjectID))
		return c.WithLogger(a.log), nil
	case config.DriverKafka:
		prod := kafkaRepo.BootstrapProducer(ctx, push.Kafka.Brokers, push.Kafka.Topic, a.log)
		a.closers = append(a.closers, prod.Close)
		a.log.Info("push transport ready", zap.String("driver", push.Driver),
			zap.Strings("brokers", push.Kafka.Brokers), zap.String("topic", push.Kafka.Topic))
		return kafkaRepo.NewPushEventsKafka(prod), nil
	default:
		a.log.Info("push transport ready", zap.String("driver", config.DriverLog))
		return logpush.New(a.log), nil
	}
}

func (a *app) users() *pg.UserRepo {
	return pg.NewUserRepo(a.db).WithLogger(a.log)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close", zap.Error(err))
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	if err := a.otel.Shutdown(context.Background()); err != nil {
		a.log.Warn("otel shutdown", zap.Error(err))
	}
	_ = a.log.Sync()
}
