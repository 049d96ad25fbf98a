package domain

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/usercards.yaml"
	DefaultEndpoint   = "https://jsonplaceholder.typicode.com/users"

	SourcePlaceholder = "placeholder"
	SourceLdap        = "ldap"

	StoreMemory = "memory"
	StoreBolt   = "bolt"
)

// Config is read from /etc/usercards.yaml unless --config says otherwise.
type Config struct {
	Listen  string        `yaml:"listen"`
	Source  SourceConfig  `yaml:"source"`
	Ldap    LdapConfig    `yaml:"ldap"`
	Store   StoreConfig   `yaml:"store"`
	Views   ViewsConfig   `yaml:"views"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

type SourceConfig struct {
	Driver   string        `yaml:"driver"`
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

type LdapConfig struct {
	Address      string `yaml:"address"`
	BindDN       string `yaml:"bind_dn"`
	BindPassword string `yaml:"bind_password"`
	BaseDN       string `yaml:"base_dn"`
	Filter       string `yaml:"filter"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type ViewsConfig struct {
	TTL          time.Duration `yaml:"ttl"`
	ReapInterval time.Duration `yaml:"reap_interval"`
	Refresh      time.Duration `yaml:"refresh"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

func DefaultConfig() *Config {
	return &Config{
		Listen: ":8080",
		Source: SourceConfig{
			Driver:   SourcePlaceholder,
			Endpoint: DefaultEndpoint,
			Timeout:  10 * time.Second,
		},
		Ldap: LdapConfig{
			Filter: "(objectClass=inetOrgPerson)",
		},
		Store: StoreConfig{
			Driver: StoreMemory,
			Path:   "/tmp/usercards.db",
		},
		Views: ViewsConfig{
			TTL:          30 * time.Second,
			ReapInterval: 10 * time.Second,
			Refresh:      time.Second,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "usercards",
		},
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// LoadConfig reads the yaml file over the defaults, then applies .env and
// environment overrides. A missing or broken file only produces a warning.
func LoadConfig(path string) *Config {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath
	}

	cfgfile, cfgErr := os.ReadFile(path)
	if cfgErr != nil {
		log.Warn().Msgf("open config file, using defaults: %s", cfgErr.Error())
	} else if cfgErr = yaml.Unmarshal(cfgfile, cfg); cfgErr != nil {
		log.Warn().Msgf("parse config file, using defaults: %s", cfgErr.Error())
		cfg = DefaultConfig()
	}

	loadDotEnv()

	cfg.Listen = env.GetString("USERCARDS_LISTEN", cfg.Listen)
	cfg.Source.Endpoint = env.GetString("USERCARDS_SOURCE_ENDPOINT", cfg.Source.Endpoint)
	cfg.Source.Driver = env.GetString("USERCARDS_SOURCE_DRIVER", cfg.Source.Driver)
	cfg.Store.Driver = env.GetString("USERCARDS_STORE_DRIVER", cfg.Store.Driver)
	cfg.Log.Level = env.GetString("USERCARDS_LOG_LEVEL", cfg.Log.Level)
	cfg.Metrics.Enabled = env.GetBool("USERCARDS_METRICS_ENABLED", cfg.Metrics.Enabled)

	return cfg
}

// loadDotEnv loads the first .env found walking up from the working directory.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}

	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
