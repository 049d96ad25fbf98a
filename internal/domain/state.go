package domain

import (
	"encoding/json"
	"time"
)

// Mode is the single render mode a FetchState resolves to.
type Mode int

const (
	ModeLoading Mode = iota
	ModeFailed
	ModeLoaded
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeFailed:
		return "failed"
	default:
		return "loaded"
	}
}

// FetchState is what the renderer draws. An empty Error means no error.
type FetchState struct {
	Users   []DisplayUser
	Loading bool
	Error   string
}

func InitialState() FetchState {
	return FetchState{Users: []DisplayUser{}, Loading: true}
}

func LoadedState(users []DisplayUser) FetchState {
	if users == nil {
		users = []DisplayUser{}
	}
	return FetchState{Users: users}
}

func FailedState(message string) FetchState {
	if message == "" {
		message = MsgStatus
	}
	return FetchState{Users: []DisplayUser{}, Error: message}
}

// Mode gives loading precedence over error, and error over the list.
func (s FetchState) Mode() Mode {
	switch {
	case s.Loading:
		return ModeLoading
	case s.Error != "":
		return ModeFailed
	default:
		return ModeLoaded
	}
}

func (s FetchState) Terminal() bool {
	return !s.Loading
}

func (s FetchState) clone() FetchState {
	users := make([]DisplayUser, len(s.Users))
	copy(users, s.Users)
	s.Users = users
	return s
}

type fetchStateJSON struct {
	Users   []DisplayUser `json:"users"`
	Loading bool          `json:"loading"`
	Error   *string       `json:"error"`
}

// MarshalJSON writes a missing error as null.
func (s FetchState) MarshalJSON() ([]byte, error) {
	out := fetchStateJSON{Users: s.Users, Loading: s.Loading}
	if out.Users == nil {
		out.Users = []DisplayUser{}
	}
	if s.Error != "" {
		out.Error = &s.Error
	}
	return json.Marshal(out)
}

func (s *FetchState) UnmarshalJSON(b []byte) error {
	var in fetchStateJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	s.Users = in.Users
	if s.Users == nil {
		s.Users = []DisplayUser{}
	}
	s.Loading = in.Loading
	s.Error = ""
	if in.Error != nil {
		s.Error = *in.Error
	}
	return nil
}

// View is one mounted page session.
type View struct {
	Id        string
	State     FetchState
	MountedAt time.Time
	SeenAt    time.Time
}
