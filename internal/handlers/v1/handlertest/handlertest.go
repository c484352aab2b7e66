// Package handlertest builds humatest APIs that run handlers as an
// authenticated user.
package handlertest

import (
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-manager/internal/auth"
)

// Token is the bearer token accepted by the API returned from NewAPI.
const Token = "test-token"

// AuthHeader authenticates a humatest request.
const AuthHeader = "Authorization: Bearer " + Token

type staticVerifier struct {
	userID uuid.UUID
}

func (v staticVerifier) Verify(token string) (uuid.UUID, error) {
	if token != Token {
		return uuid.Nil, auth.ErrInvalidToken
	}
	return v.userID, nil
}

// NewAPI returns a test API whose protected operations resolve Token to userID.
func NewAPI(t *testing.T, userID uuid.UUID) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(auth.NewMiddleware(api, staticVerifier{userID: userID}))
	return api
}
