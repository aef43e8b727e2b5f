package server

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/armon/go-metrics"
	raven "github.com/getsentry/raven-go"
	"github.com/pressly/imgedit"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Bind      string `toml:"bind"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Profiler  bool   `toml:"profiler"`

	// [limits]
	Limits struct {
		MaxRequests    int           `toml:"max_requests"`
		BacklogSize    int           `toml:"backlog_size"`
		RequestTimeout time.Duration `toml:"-"`
		BacklogTimeout time.Duration `toml:"-"`

		RequestTimeoutStr string `toml:"request_timeout"`
		BacklogTimeoutStr string `toml:"backlog_timeout"`
	} `toml:"limits"`

	// [db]
	DB struct {
		RedisUri   string        `toml:"redis_uri"`
		SessionTTL time.Duration `toml:"-"`

		SessionTTLStr string `toml:"session_ttl"`
	} `toml:"db"`

	// [resize]
	Resize imgedit.ResizeOptions `toml:"resize"`

	// [handles]
	Handles imgedit.HTMLOptions `toml:"handles"`

	// [cors]
	CORS struct {
		AllowedOrigins []string `toml:"allowed_origins"`
	} `toml:"cors"`

	// [ssl]
	SSL struct {
		Cert string `toml:"cert"`
		Key  string `toml:"key"`
	} `toml:"ssl"`

	// [sentry]
	Sentry struct {
		DSN string `toml:"dsn"`
	} `toml:"sentry"`

	// [statsd]
	StatsD struct {
		Enabled     bool   `toml:"enabled"`
		Address     string `toml:"address"`
		ServiceName string `toml:"service_name"`
	} `toml:"statsd"`
}

var (
	ErrNoConfigFile = errors.New("no configuration file specified")

	DefaultConfig = Config{}

	sentryHookOnce sync.Once
)

func init() {
	cf := Config{
		Bind:      "0.0.0.0:4446",
		LogLevel:  "INFO",
		LogFormat: "text",
		Profiler:  false,
	}

	cf.Limits.MaxRequests = 1000
	cf.Limits.BacklogSize = 5000
	cf.Limits.RequestTimeout = 10 * time.Second
	cf.Limits.BacklogTimeout = 1500 * time.Millisecond

	cf.DB.SessionTTL = 24 * time.Hour

	cf.Resize = imgedit.ResizeOptions{MinWidth: 10, MinHeight: 10, PreserveRatio: false}
	cf.Handles = imgedit.HTMLOptions{BorderColor: "#DB626C"}
	cf.CORS.AllowedOrigins = []string{"*"}
	cf.StatsD.ServiceName = "imgedit"

	DefaultConfig = cf
}

func NewConfig() *Config {
	cf := DefaultConfig
	cf.CORS.AllowedOrigins = append([]string(nil), DefaultConfig.CORS.AllowedOrigins...)
	return &cf
}

func NewConfigFromFile(confFile string, confEnv string) (*Config, error) {
	var err error

	if confFile == "" {
		confFile = confEnv
	}
	if confFile == "" {
		return nil, ErrNoConfigFile
	}
	if _, err = os.Stat(confFile); os.IsNotExist(err) {
		return nil, ErrNoConfigFile
	}

	cf := NewConfig()

	if _, err = toml.DecodeFile(confFile, cf); err != nil {
		return nil, err
	}
	return cf, nil
}

func (cf *Config) Apply() (err error) {
	// logging
	level, err := logrus.ParseLevel(strings.ToLower(cf.LogLevel))
	if err != nil {
		return err
	}
	Log.SetLevel(level)
	if cf.LogFormat == "json" || cf.Sentry.DSN != "" {
		Log.Formatter = &logrus.JSONFormatter{}
	} else {
		Log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	}

	// error reporting
	if cf.Sentry.DSN != "" {
		if err := raven.SetDSN(cf.Sentry.DSN); err != nil {
			return err
		}
		sentryHookOnce.Do(func() { Log.AddHook(sentryHook{}) })
	}

	// limits
	if cf.Limits.RequestTimeoutStr != "" {
		to, err := time.ParseDuration(cf.Limits.RequestTimeoutStr)
		if err != nil {
			return err
		}
		cf.Limits.RequestTimeout = to
	}
	if cf.Limits.BacklogTimeoutStr != "" {
		to, err := time.ParseDuration(cf.Limits.BacklogTimeoutStr)
		if err != nil {
			return err
		}
		cf.Limits.BacklogTimeout = to
	}
	if cf.DB.SessionTTLStr != "" {
		ttl, err := time.ParseDuration(cf.DB.SessionTTLStr)
		if err != nil {
			return err
		}
		cf.DB.SessionTTL = ttl
	}

	// resize defaults
	if err := cf.Resize.Validate(); err != nil {
		return err
	}
	if cf.Handles.BorderColor, err = imgedit.NormalizeColor(cf.Handles.BorderColor); err != nil {
		return err
	}

	return nil
}

// GetStore returns the redis store when a redis uri is configured, and an
// in-process store otherwise.
func (cf *Config) GetStore() (Store, error) {
	if cf.DB.RedisUri == "" {
		Log.Warn("no redis_uri configured, sessions are kept in memory")
		return NewMemStore(), nil
	}

	db, err := NewRedisStore(cf.DB.RedisUri, cf.DB.SessionTTL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (cf *Config) SetupStatsD() error {
	var sink metrics.MetricSink

	if cf.StatsD.Enabled {
		statsd, err := metrics.NewStatsdSink(cf.StatsD.Address)
		if err != nil {
			return err
		}
		sink = statsd
	} else {
		sink = metrics.NewInmemSink(10*time.Second, time.Minute)
	}

	config := metrics.DefaultConfig(cf.StatsD.ServiceName)
	config.EnableHostname = true
	config.EnableRuntimeMetrics = cf.StatsD.Enabled
	config.TimerGranularity = time.Millisecond
	config.ProfileInterval = time.Second * 60
	config.HostName, _ = os.Hostname()

	_, err := metrics.NewGlobal(config, sink)
	return err
}
