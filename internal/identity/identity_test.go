package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Static(t *testing.T) {
	id := Resolve(context.Background(), Static(&Identity{ID: 42, FirstName: "Ann", LastName: "Lee"}))
	require.NotNil(t, id)
	assert.Equal(t, int64(42), id.ID)
	assert.Equal(t, "Ann Lee", id.DisplayName())
	assert.Equal(t, "42", id.UserID())
}

func TestResolve_FailureYieldsNil(t *testing.T) {
	failing := ProviderFunc(func(ctx context.Context) (*Identity, error) {
		return nil, errors.New("bridge unavailable")
	})
	assert.Nil(t, Resolve(context.Background(), failing))
	assert.Nil(t, Resolve(context.Background(), nil))
	assert.Nil(t, Resolve(context.Background(), Static(&Identity{ID: 0})))
}

func TestChain_SkipsEmptyProviders(t *testing.T) {
	t.Setenv(EnvUserID, "")
	p := Chain(Static(nil), Env(), Static(&Identity{ID: 7, City: "Kazan"}))

	id, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.ID)
	assert.Equal(t, "Kazan", id.CityOrDefault())
}

func TestChain_EnvFirst(t *testing.T) {
	t.Setenv(EnvUserID, "1001")
	t.Setenv(EnvFirstName, "Ivan")

	id, err := Chain(Env(), Static(&Identity{ID: 7})).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1001), id.ID)
	assert.Equal(t, "Ivan", id.FirstName)
}

func TestChain_StopsOnHardError(t *testing.T) {
	t.Setenv(EnvUserID, "not-a-number")

	_, err := Chain(Env(), Static(&Identity{ID: 7})).Fetch(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoIdentity)
}

func TestChain_Empty(t *testing.T) {
	_, err := Chain().Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 15 ")
	require.NoError(t, err)
	assert.Equal(t, int64(15), id)

	_, err = ParseID("-3")
	assert.Error(t, err)
	_, err = ParseID("")
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestNilIdentityHelpers(t *testing.T) {
	var id *Identity
	assert.Equal(t, "", id.DisplayName())
	assert.Equal(t, "", id.UserID())
	assert.Equal(t, "City not specified", id.CityOrDefault())
}
