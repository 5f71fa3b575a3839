// Package identity resolves the session user once at startup.
//
// The host platform owns the user's identity; this client only reads it.
// A resolved *Identity is passed explicitly to every panel that needs it and
// nil means "no identity", which panels treat as a terminal input error.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"achievediary/internal/logging"
)

// ErrNoIdentity is returned by providers that have nothing to offer.
var ErrNoIdentity = errors.New("identity not available")

// Identity is the platform user and the display fields shown on panels.
type Identity struct {
	ID        int64  `json:"id" yaml:"id"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	City      string `json:"city,omitempty" yaml:"city"`
	Avatar    string `json:"avatar,omitempty" yaml:"avatar"`
}

// DisplayName joins first and last name.
func (i *Identity) DisplayName() string {
	if i == nil {
		return ""
	}
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// CityOrDefault returns the city, or a placeholder when it is unknown.
func (i *Identity) CityOrDefault() string {
	if i == nil || i.City == "" {
		return "City not specified"
	}
	return i.City
}

// UserID returns the id as it appears in query strings.
func (i *Identity) UserID() string {
	if i == nil {
		return ""
	}
	return strconv.FormatInt(i.ID, 10)
}

// Provider supplies the session identity.
type Provider interface {
	Fetch(ctx context.Context) (*Identity, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (*Identity, error)

// Fetch calls f.
func (f ProviderFunc) Fetch(ctx context.Context) (*Identity, error) {
	return f(ctx)
}

// Resolve fetches the identity once. Any failure is logged and reported as
// nil; callers never see the error.
func Resolve(ctx context.Context, p Provider) *Identity {
	if p == nil {
		logging.IdentityWarn("no identity provider configured")
		return nil
	}
	id, err := p.Fetch(ctx)
	if err != nil {
		logging.IdentityWarn("identity lookup failed: %v", err)
		return nil
	}
	if id == nil || id.ID <= 0 {
		logging.IdentityWarn("identity lookup returned no usable user id")
		return nil
	}
	logging.Identity("resolved user %d (%s)", id.ID, id.DisplayName())
	return id
}

// ParseID parses a user id from text.
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNoIdentity
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}
