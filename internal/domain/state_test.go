package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/h2hsecure/usercards/internal/domain"
	. "github.com/onsi/gomega"
)

func TestInitialState(t *testing.T) {
	RegisterTestingT(t)

	s := domain.InitialState()

	Expect(s.Users).To(BeEmpty())
	Expect(s.Loading).To(BeTrue())
	Expect(s.Error).To(BeEmpty())
	Expect(s.Mode()).To(Equal(domain.ModeLoading))

	b, err := json.Marshal(s)
	Expect(err).To(BeNil())
	Expect(b).To(MatchJSON(`{"users":[],"loading":true,"error":null}`))
}

func TestModeLoadingWins(t *testing.T) {
	RegisterTestingT(t)

	s := domain.FetchState{
		Users:   []domain.DisplayUser{{Name: "Leanne"}},
		Loading: true,
		Error:   "boom",
	}

	Expect(s.Mode()).To(Equal(domain.ModeLoading))
	Expect(s.Terminal()).To(BeFalse())
}

func TestFailedState(t *testing.T) {
	RegisterTestingT(t)

	s := domain.FailedState(domain.MsgStatus)

	Expect(s.Mode()).To(Equal(domain.ModeFailed))
	Expect(s.Users).To(BeEmpty())

	b, err := json.Marshal(s)
	Expect(err).To(BeNil())
	Expect(b).To(MatchJSON(`{"users":[],"loading":false,"error":"Failed to fetch users"}`))

	Expect(domain.FailedState("").Error).To(Equal(domain.MsgStatus))
}

func TestLoadedEmptyState(t *testing.T) {
	RegisterTestingT(t)

	s := domain.LoadedState(nil)

	Expect(s.Mode()).To(Equal(domain.ModeLoaded))
	b, err := json.Marshal(s)
	Expect(err).To(BeNil())
	Expect(b).To(MatchJSON(`{"users":[],"loading":false,"error":null}`))
}

func TestStateJSONRoundTripKeepsNullError(t *testing.T) {
	RegisterTestingT(t)

	var s domain.FetchState
	Expect(json.Unmarshal([]byte(`{"users":null,"loading":false,"error":null}`), &s)).To(Succeed())

	Expect(s.Users).NotTo(BeNil())
	Expect(s.Error).To(BeEmpty())
	Expect(s.Mode()).To(Equal(domain.ModeLoaded))
}
