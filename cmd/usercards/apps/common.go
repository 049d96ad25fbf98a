package apps

import (
	"fmt"
	"os"

	"github.com/h2hsecure/usercards/internal/adapter"
	"github.com/h2hsecure/usercards/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	AppDescription = `This is a user card viewer. Here is the options:
	- serve: Serve the card grid over http, one fetch per mounted view
	- fetch: Fetch the user list once and print it`
)

// CfgFile is bound to the persistent --config flag.
var CfgFile string

func loadConfig() *domain.Config {
	cfg := domain.LoadConfig(CfgFile)
	setupLogger(cfg.Log)
	return cfg
}

func setupLogger(cfg domain.LogConfig) {
	if cfg.Console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func newBackend(cfg *domain.Config) (domain.Backend, error) {
	switch cfg.Source.Driver {
	case "", domain.SourcePlaceholder:
		return adapter.NewPlaceholderAdapter(cfg), nil
	case domain.SourceLdap:
		return adapter.NewLdapAdapter(cfg), nil
	default:
		return nil, fmt.Errorf("unknown source driver: %s", cfg.Source.Driver)
	}
}

func newStore(cfg *domain.Config) (domain.ViewStore, error) {
	switch cfg.Store.Driver {
	case "", domain.StoreMemory:
		return adapter.NewMemoryStore(), nil
	case domain.StoreBolt:
		return adapter.NewBoltStore(cfg.Store.Path)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}
