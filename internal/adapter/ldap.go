package adapter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-ldap/ldap/v3"
	"github.com/samber/lo"

	"github.com/h2hsecure/usercards/internal/domain"
	"github.com/rs/zerolog/log"
)

var ldapAttributes = []string{
	"uidNumber", "cn", "uid", "mail", "telephoneNumber",
	"labeledURI", "o", "street", "l", "postalCode",
}

// LdapAdapter lists users from a directory, shaped as remote user records.
type LdapAdapter struct {
	Address      string
	BindDN       string
	BindPassword string
	BaseDN       string
	Filter       string
}

func NewLdapAdapter(config *domain.Config) domain.Backend {
	return &LdapAdapter{
		Address:      config.Ldap.Address,
		BindDN:       config.Ldap.BindDN,
		BindPassword: config.Ldap.BindPassword,
		BaseDN:       config.Ldap.BaseDN,
		Filter:       config.Ldap.Filter,
	}
}

func (a *LdapAdapter) FetchUsers(ctx context.Context) ([]domain.RemoteUser, error) {
	conn, err := a.connect()
	if err != nil {
		return nil, fmt.Errorf("ldap connect: %w: %w", domain.ErrTransport, err)
	}
	defer func() {
		conn.Close()
	}()

	// go-ldap has no context support; closing the connection unblocks Search.
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	searchRequest := ldap.NewSearchRequest(
		a.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		a.Filter,
		ldapAttributes,
		nil,
	)

	searchResp, err := conn.Search(searchRequest)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ldap search: %w", ctx.Err())
		}
		log.Warn().Err(err).Msg("ldap search failed")
		return nil, fmt.Errorf("ldap search: %w: %w", domain.ErrTransport, err)
	}

	return lo.Map(searchResp.Entries, func(entry *ldap.Entry, _ int) domain.RemoteUser {
		return entryToRemoteUser(entry)
	}), nil
}

func entryToRemoteUser(entry *ldap.Entry) domain.RemoteUser {
	id, _ := strconv.Atoi(entry.GetAttributeValue("uidNumber"))

	return domain.RemoteUser{
		Id:       id,
		Name:     entry.GetAttributeValue("cn"),
		Username: entry.GetAttributeValue("uid"),
		Email:    entry.GetAttributeValue("mail"),
		Phone:    entry.GetAttributeValue("telephoneNumber"),
		Website:  entry.GetAttributeValue("labeledURI"),
		Address: domain.Address{
			Street:  entry.GetAttributeValue("street"),
			City:    entry.GetAttributeValue("l"),
			Zipcode: entry.GetAttributeValue("postalCode"),
		},
		Company: domain.Company{
			Name: entry.GetAttributeValue("o"),
		},
	}
}

func (a *LdapAdapter) connect() (*ldap.Conn, error) {
	conn, err := ldap.DialURL(a.Address)
	if err != nil {
		return nil, err
	}

	if a.BindDN == "" {
		return conn, nil
	}

	if err := conn.Bind(a.BindDN, a.BindPassword); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}
