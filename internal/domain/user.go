package domain

import (
	"strings"

	"github.com/samber/lo"
)

// RemoteUser is the user record served by the remote listing endpoint.
type RemoteUser struct {
	Id       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Address  Address `json:"address"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Company  Company `json:"company"`
}

type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	Bs          string `json:"bs"`
}

// DisplayUser is the minimal record rendered as a card.
type DisplayUser struct {
	Id       int     `json:"id"`
	Name     string  `json:"name"`
	LastName string  `json:"lastName"`
	Contact  Contact `json:"contact"`
}

type Contact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// AdaptUser maps a remote record into its display shape. The full name is
// split on the first space only, so "Mrs. Dennis Schulist" keeps
// "Dennis Schulist" as the last name.
func AdaptUser(user RemoteUser) DisplayUser {
	first, last, _ := strings.Cut(user.Name, " ")

	return DisplayUser{
		Id:       user.Id,
		Name:     first,
		LastName: last,
		Contact: Contact{
			Phone: user.Phone,
			Email: user.Email,
		},
	}
}

// AdaptUsers keeps length and order: out[i] derives only from in[i].
func AdaptUsers(users []RemoteUser) []DisplayUser {
	return lo.Map(users, func(item RemoteUser, _ int) DisplayUser {
		return AdaptUser(item)
	})
}
