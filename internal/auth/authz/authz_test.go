package authz

import (
	"testing"

	authdomain "spendtrack-backend/internal/auth/domain"

	"github.com/stretchr/testify/assert"
)

type ownedThing struct{ owner uint }

func (o ownedThing) OwnedBy() uint { return o.owner }

func TestOwns(t *testing.T) {
	alice := &authdomain.User{ID: 1}
	bob := &authdomain.User{ID: 2}
	res := ownedThing{owner: 1}

	assert.True(t, Owns(alice, res))
	assert.False(t, Owns(bob, res))
}

func TestOwnsNilUser(t *testing.T) {
	assert.False(t, Owns(nil, ownedThing{owner: 1}))
}

func TestOwnsNilResource(t *testing.T) {
	assert.False(t, Owns(&authdomain.User{ID: 1}, nil))
}
