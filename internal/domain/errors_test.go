package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/h2hsecure/usercards/internal/domain"
	. "github.com/onsi/gomega"
)

func TestUserMessage(t *testing.T) {
	RegisterTestingT(t)

	wrap := func(err error) error {
		return fmt.Errorf("fetch users: %w", err)
	}

	Expect(domain.UserMessage(wrap(domain.ErrStatus))).To(Equal("Failed to fetch users"))
	Expect(domain.UserMessage(wrap(domain.ErrTimeout))).To(Equal(domain.MsgTimeout))
	Expect(domain.UserMessage(wrap(domain.ErrMalformed))).To(Equal(domain.MsgMalformed))
	Expect(domain.UserMessage(wrap(domain.ErrTransport))).To(Equal(domain.MsgTransport))
	Expect(domain.UserMessage(errors.New("dial tcp: secret internals"))).To(Equal(domain.MsgStatus))
}

func TestOutcome(t *testing.T) {
	RegisterTestingT(t)

	Expect(domain.Outcome(nil)).To(Equal("success"))
	Expect(domain.Outcome(domain.ErrStatus)).To(Equal("status"))
	Expect(domain.Outcome(domain.ErrTimeout)).To(Equal("timeout"))
	Expect(domain.Outcome(errors.New("x"))).To(Equal("error"))
}
