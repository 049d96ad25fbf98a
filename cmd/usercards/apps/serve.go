package apps

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/h2hsecure/usercards/internal/domain"
	"github.com/h2hsecure/usercards/internal/metrics"
	"github.com/h2hsecure/usercards/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the user card grid",
	Long:  AppDescription,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// Listen for termination signal for gracefully shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)

		if err := Serve(loadConfig(), c); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			os.Exit(1)
		}
	},
}

var errSignal = errors.New("signal received")

func Serve(cfg *domain.Config, c chan os.Signal) error {
	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}

	store, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("store open: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("store close")
		}
	}()

	var provider *metrics.Provider
	recorder := domain.NoopRecorder()
	if cfg.Metrics.Enabled {
		provider, err = metrics.NewProvider()
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		defer func() {
			_ = provider.Shutdown(context.Background())
		}()

		recorder, err = metrics.NewRecorder(provider.MeterProvider(), cfg.Metrics.Namespace)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	base, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := domain.NewService(cfg, store, backend,
		domain.WithServiceRecorder(recorder),
		domain.WithBaseContext(base),
	)
	srv := server.NewServer(cfg, svc, provider)

	grp, ctx := errgroup.WithContext(base)

	grp.Go(func() error {
		return srv.Start(ctx)
	})

	grp.Go(func() error {
		interval := cfg.Views.ReapInterval
		if interval <= 0 {
			interval = 10 * time.Second
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case now := <-ticker.C:
				if n := svc.Reap(ctx, now); n > 0 {
					log.Info().Int("views", n).Msg("reaped idle views")
				}
			}
		}
	})

	grp.Go(func() error {
		select {
		case s := <-c:
			return fmt.Errorf("%w: %v", errSignal, s)
		case <-ctx.Done():
			return nil
		}
	})

	grp.Go(func() error {
		<-ctx.Done()

		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()

		return errors.Join(srv.Shutdown(shutdownCtx), svc.Close(shutdownCtx))
	})

	err = grp.Wait()
	if errors.Is(err, errSignal) {
		log.Info().Err(err).Msg("closing the app")
		return nil
	}

	return err
}
