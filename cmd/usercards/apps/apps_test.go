package apps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/h2hsecure/usercards/internal/adapter"
	"github.com/h2hsecure/usercards/internal/domain"
	. "github.com/onsi/gomega"
)

func testConfig(endpoint string) *domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Source.Endpoint = endpoint
	cfg.Source.Timeout = 2 * time.Second
	cfg.Listen = "127.0.0.1:0"
	cfg.Metrics.Enabled = false
	return cfg
}

func TestFetch(t *testing.T) {
	RegisterTestingT(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":3,"name":"Clementine Bauch","phone":"1-463-123-4447","email":"Nathan@yesenia.net"}]`))
	}))
	defer upstream.Close()

	state, err := Fetch(context.Background(), testConfig(upstream.URL))

	Expect(err).To(BeNil())
	Expect(state.Users).To(Equal([]domain.DisplayUser{{
		Id:       3,
		Name:     "Clementine",
		LastName: "Bauch",
		Contact:  domain.Contact{Phone: "1-463-123-4447", Email: "Nathan@yesenia.net"},
	}}))
}

func TestFetchInterrupted(t *testing.T) {
	RegisterTestingT(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer upstream.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	cfg := testConfig(upstream.URL)
	cfg.Source.Timeout = 0

	_, err := Fetch(ctx, cfg)
	Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
}

func TestNewBackend(t *testing.T) {
	RegisterTestingT(t)
	cfg := domain.DefaultConfig()

	b, err := newBackend(cfg)
	Expect(err).To(BeNil())
	Expect(b).To(BeAssignableToTypeOf(&adapter.PlaceholderAdapter{}))

	cfg.Source.Driver = domain.SourceLdap
	b, err = newBackend(cfg)
	Expect(err).To(BeNil())
	Expect(b).To(BeAssignableToTypeOf(&adapter.LdapAdapter{}))

	cfg.Source.Driver = "carrier-pigeon"
	_, err = newBackend(cfg)
	Expect(err).NotTo(BeNil())
}

func TestNewStore(t *testing.T) {
	RegisterTestingT(t)
	cfg := domain.DefaultConfig()

	s, err := newStore(cfg)
	Expect(err).To(BeNil())
	Expect(s.Close()).To(Succeed())

	cfg.Store.Driver = domain.StoreBolt
	cfg.Store.Path = filepath.Join(t.TempDir(), "views.db")
	s, err = newStore(cfg)
	Expect(err).To(BeNil())
	Expect(s.Close()).To(Succeed())

	cfg.Store.Driver = "tape"
	_, err = newStore(cfg)
	Expect(err).NotTo(BeNil())
}

func TestServeStopsOnSignal(t *testing.T) {
	RegisterTestingT(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	c := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() {
		done <- Serve(testConfig(upstream.URL), c)
	}()

	time.Sleep(50 * time.Millisecond)
	c <- syscall.SIGTERM

	Eventually(done).WithTimeout(5 * time.Second).Should(Receive(BeNil()))
}
