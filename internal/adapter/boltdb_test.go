package adapter_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/h2hsecure/usercards/internal/adapter"
	"github.com/h2hsecure/usercards/internal/domain"
	. "github.com/onsi/gomega"
)

func storeSuite(t *testing.T, store domain.ViewStore) {
	RegisterTestingT(t)
	ctx := context.Background()

	Expect(store.Save(ctx, "v1", domain.InitialState())).To(Succeed())

	state, err := store.Load(ctx, "v1")
	Expect(err).To(BeNil())
	Expect(state.Mode()).To(Equal(domain.ModeLoading))
	Expect(state.Users).To(BeEmpty())

	loaded := domain.LoadedState([]domain.DisplayUser{
		{Id: 1, Name: "Leanne", LastName: "Graham", Contact: domain.Contact{Phone: "1", Email: "a@b"}},
	})
	Expect(store.Save(ctx, "v1", loaded)).To(Succeed())

	state, err = store.Load(ctx, "v1")
	Expect(err).To(BeNil())
	Expect(state).To(Equal(loaded))

	Expect(store.Save(ctx, "v2", domain.FailedState(domain.MsgStatus))).To(Succeed())
	state, err = store.Load(ctx, "v2")
	Expect(err).To(BeNil())
	Expect(state.Error).To(Equal("Failed to fetch users"))

	Expect(store.Delete(ctx, "v1")).To(Succeed())
	_, err = store.Load(ctx, "v1")
	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())

	Expect(store.Delete(ctx, "never")).To(Succeed())
}

func TestMemoryStore(t *testing.T) {
	store := adapter.NewMemoryStore()
	defer func() { _ = store.Close() }()

	storeSuite(t, store)
}

func TestBoltStore(t *testing.T) {
	RegisterTestingT(t)
	path := filepath.Join(t.TempDir(), "views.db")

	store, err := adapter.NewBoltStore(path)
	Expect(err).To(BeNil())

	storeSuite(t, store)
	Expect(store.Close()).To(Succeed())
}

func TestBoltStoreResetsOnOpen(t *testing.T) {
	RegisterTestingT(t)
	path := filepath.Join(t.TempDir(), "views.db")

	store, err := adapter.NewBoltStore(path)
	Expect(err).To(BeNil())
	Expect(store.Save(context.Background(), "v1", domain.InitialState())).To(Succeed())
	Expect(store.Close()).To(Succeed())

	store, err = adapter.NewBoltStore(path)
	Expect(err).To(BeNil())
	defer func() { _ = store.Close() }()

	_, err = store.Load(context.Background(), "v1")
	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}
