package domain_test

import (
	"context"
	"sync/atomic"

	"github.com/h2hsecure/usercards/internal/domain"
)

type fakeBackend struct {
	calls   atomic.Int32
	users   []domain.RemoteUser
	err     error
	block   bool
	started chan struct{}
}

func (f *fakeBackend) FetchUsers(ctx context.Context) ([]domain.RemoteUser, error) {
	f.calls.Add(1)
	if f.started != nil {
		close(f.started)
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.users, f.err
}

var sampleUsers = []domain.RemoteUser{
	{Id: 1, Name: "Leanne Graham", Phone: "1-770-736-8031 x56442", Email: "Sincere@april.biz"},
	{Id: 2, Name: "Ervin Howell", Phone: "010-692-6593 x09125", Email: "Shanna@melissa.tv"},
}
