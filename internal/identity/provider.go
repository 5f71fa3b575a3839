package identity

import (
	"context"
	"errors"
	"os"
)

// Static returns a provider that always yields id (or ErrNoIdentity when id
// is nil or has no user id).
func Static(id *Identity) Provider {
	return ProviderFunc(func(ctx context.Context) (*Identity, error) {
		if id == nil || id.ID <= 0 {
			return nil, ErrNoIdentity
		}
		cp := *id
		return &cp, nil
	})
}

// Environment variables read by Env.
const (
	EnvUserID    = "DIARY_USER_ID"
	EnvFirstName = "DIARY_USER_FIRST_NAME"
	EnvLastName  = "DIARY_USER_LAST_NAME"
	EnvCity      = "DIARY_USER_CITY"
	EnvAvatar    = "DIARY_USER_AVATAR"
)

// Env reads the identity from DIARY_USER_* variables.
func Env() Provider {
	return ProviderFunc(func(ctx context.Context) (*Identity, error) {
		id, err := ParseID(os.Getenv(EnvUserID))
		if err != nil {
			return nil, err
		}
		return &Identity{
			ID:        id,
			FirstName: os.Getenv(EnvFirstName),
			LastName:  os.Getenv(EnvLastName),
			City:      os.Getenv(EnvCity),
			Avatar:    os.Getenv(EnvAvatar),
		}, nil
	})
}

// Chain tries providers in order and returns the first identity found.
// ErrNoIdentity from a provider moves on to the next one; any other error
// stops the chain.
func Chain(providers ...Provider) Provider {
	return ProviderFunc(func(ctx context.Context) (*Identity, error) {
		for _, p := range providers {
			if p == nil {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			id, err := p.Fetch(ctx)
			if errors.Is(err, ErrNoIdentity) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if id != nil {
				return id, nil
			}
		}
		return nil, ErrNoIdentity
	})
}
