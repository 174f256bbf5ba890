package reminder_config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reminder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverLog, cfg.Push.Driver)
	assert.Equal(t, time.Minute, cfg.Sched.Tick)
	assert.Zero(t, cfg.Sched.MaxInFlight)
	assert.Equal(t, ":8082", cfg.Sched.MetricsAddr)
	assert.Equal(t, 5*time.Second, cfg.DB.QueryTimeout)
	assert.Equal(t, "https://fcm.googleapis.com", cfg.Push.FCM.BaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
push:
  driver: fcm
  fcm:
    project_id: remindus-prod
    requests_per_second: 50
sched:
  tick: 30s
  max_in_flight: 16
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverFCM, cfg.Push.Driver)
	assert.Equal(t, "remindus-prod", cfg.Push.FCM.ProjectID)
	assert.InDelta(t, 50, cfg.Push.FCM.RequestsPerSecond, 0)
	assert.Equal(t, 30*time.Second, cfg.Sched.Tick)
	assert.Equal(t, 16, cfg.Sched.MaxInFlight)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "sched:\n  tick: 30s\n")
	t.Setenv("SCHED_TICK", "5m")
	t.Setenv("DB_DSN", "postgres://u:p@db:5432/x")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Sched.Tick)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.DSN)
	assert.Equal(t, "debug", cfg.AsLoggerConfig().Level)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "fcm without project", yaml: "push:\n  driver: fcm\n", want: "project_id"},
		{name: "kafka without topic", yaml: "push:\n  driver: kafka\n  kafka:\n    topic: \"\"\n", want: "push.kafka"},
		{name: "unknown driver", yaml: "push:\n  driver: carrier-pigeon\n", want: "carrier-pigeon"},
		{name: "negative in-flight cap", yaml: "sched:\n  max_in_flight: -1\n", want: "max_in_flight"},
		{name: "empty dsn", yaml: "db:\n  dsn: \"\"\n", want: "db.dsn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			var cerr ErrConfig
			require.ErrorAs(t, err, &cerr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_AsOTELConfig(t *testing.T) {
	c := Config{
		App:  App{Env: "prod", Version: "1.4.0"},
		OTEL: OTEL{Enable: true, OTLPEndpoint: "collector:4317", ServiceName: "reminder", SampleRatio: 0.5},
	}
	got := c.AsOTELConfig()
	assert.True(t, got.Enable)
	assert.Equal(t, "collector:4317", got.Endpoint)
	assert.Equal(t, "prod", got.Env)
	assert.Equal(t, "1.4.0", got.Version)
	assert.InDelta(t, 0.5, got.SampleRatio, 0)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DriverLog, cfg.Push.Driver)
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "sched: [unclosed\n"))
	require.Error(t, err)
}
