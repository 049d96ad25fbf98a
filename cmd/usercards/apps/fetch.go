package apps

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/h2hsecure/usercards/internal/domain"
	"github.com/h2hsecure/usercards/internal/view"
	"github.com/spf13/cobra"
)

var fetchHTML bool

var FetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the user list once and print it",
	Long:  AppDescription,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		state, err := Fetch(ctx, loadConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			os.Exit(1)
		}

		if fetchHTML {
			err = view.Render(os.Stdout, view.NewPage("", state, "", 0))
		} else {
			err = view.RenderText(os.Stdout, state)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			os.Exit(1)
		}

		if state.Mode() == domain.ModeFailed {
			os.Exit(3)
		}
	},
}

func init() {
	FetchCmd.Flags().BoolVar(&fetchHTML, "html", false, "print the html page instead of text")
}

// Fetch runs one controller to completion. An interrupt tears it down and
// leaves the state loading.
func Fetch(ctx context.Context, cfg *domain.Config) (domain.FetchState, error) {
	backend, err := newBackend(cfg)
	if err != nil {
		return domain.FetchState{}, err
	}

	ctrl := domain.NewController(backend, domain.WithTimeout(cfg.Source.Timeout))
	ctrl.Activate(ctx)

	select {
	case <-ctrl.Done():
		if err := ctx.Err(); err != nil {
			return ctrl.State(), fmt.Errorf("fetch interrupted: %w", err)
		}
	case <-ctx.Done():
		ctrl.Teardown()
		<-ctrl.Done()
		return ctrl.State(), fmt.Errorf("fetch interrupted: %w", ctx.Err())
	}

	return ctrl.State(), nil
}
