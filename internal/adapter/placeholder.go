package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/h2hsecure/usercards/internal/domain"
)

// PlaceholderAdapter lists users from a jsonplaceholder style REST endpoint.
type PlaceholderAdapter struct {
	Endpoint string
	client   *resty.Client
}

func NewPlaceholderAdapter(config *domain.Config) domain.Backend {
	endpoint := config.Source.Endpoint
	if endpoint == "" {
		endpoint = domain.DefaultEndpoint
	}

	return &PlaceholderAdapter{
		Endpoint: endpoint,
		client: resty.New().
			SetLogger(restyLogger{}).
			SetRetryCount(0),
	}
}

func (a *PlaceholderAdapter) FetchUsers(ctx context.Context) ([]domain.RemoteUser, error) {
	res, err := a.client.R().
		EnableTrace().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(a.Endpoint)
	if err != nil {
		return nil, classify(a.Endpoint, err)
	}

	if !res.IsSuccess() {
		return nil, fmt.Errorf("fetch users (%s): %w: code %d", a.Endpoint, domain.ErrStatus, res.StatusCode())
	}

	var ret []domain.RemoteUser
	if err := json.Unmarshal(res.Body(), &ret); err != nil {
		return nil, fmt.Errorf("fetch users (%s): %w: %w", a.Endpoint, domain.ErrMalformed, err)
	}

	if ret == nil {
		ret = []domain.RemoteUser{}
	}

	return ret, nil
}

func classify(endpoint string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("fetch users (%s): %w: %w", endpoint, domain.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("fetch users (%s): %w", endpoint, err)
	default:
		return fmt.Errorf("fetch users (%s): %w: %w", endpoint, domain.ErrTransport, err)
	}
}
