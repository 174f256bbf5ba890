package reminder_config

import (
	"time"

	"github.com/NordCoder/Remindus/internal/obs"
	pginfra "github.com/NordCoder/Remindus/internal/repository/postgres"
)

const (
	DriverFCM   = "fcm"
	DriverKafka = "kafka"
	DriverLog   = "log"
)

type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

type SchedCfg struct {
	Tick        time.Duration `mapstructure:"tick"`
	MaxInFlight int           `mapstructure:"max_in_flight"`
	MetricsAddr string        `mapstructure:"metrics_addr"`
}

type FCM struct {
	BaseURL           string        `mapstructure:"base_url"`
	ProjectID         string        `mapstructure:"project_id"`
	AccessToken       string        `mapstructure:"access_token"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

type KafkaOut struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Push struct {
	Driver string   `mapstructure:"driver"`
	FCM    FCM      `mapstructure:"fcm"`
	Kafka  KafkaOut `mapstructure:"kafka"`
}

type OTEL struct {
	Enable       bool    `mapstructure:"enable"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

// AsOTELConfig tags exported spans with the app env and version.
func (c *Config) AsOTELConfig() *obs.OTELConfig {
	return &obs.OTELConfig{
		Enable:      c.OTEL.Enable,
		Endpoint:    c.OTEL.OTLPEndpoint,
		ServiceName: c.OTEL.ServiceName,
		Env:         c.App.Env,
		Version:     c.App.Version,
		SampleRatio: c.OTEL.SampleRatio,
	}
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type Config struct {
	App   App            `mapstructure:"app"`
	DB    pginfra.Config `mapstructure:"db"`
	Push  Push           `mapstructure:"push"`
	Sched SchedCfg       `mapstructure:"sched"`
	OTEL  OTEL           `mapstructure:"otel"`
	Log   Log            `mapstructure:"log"`
}

func (c *Config) AsLoggerConfig() obs.LogConfig {
	return obs.LogConfig{
		Level:  c.Log.Level,
		Pretty: c.Log.Pretty,
		App:    c.App.Name,
		Env:    c.App.Env,
		Ver:    c.App.Version,
	}
}

type ErrConfig string

func (e ErrConfig) Error() string { return string(e) }
