package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

// SecurityScheme is the OpenAPI scheme name protected operations reference.
const SecurityScheme = "bearer"

// ErrUnauthenticated is returned when a handler runs without a user.
var ErrUnauthenticated = errors.New("authentication required")

type userIDKey struct{}

// Verifier resolves a bearer token to a user id.
type Verifier interface {
	Verify(token string) (uuid.UUID, error)
}

// Protected is the Security requirement for operations behind the middleware.
func Protected() []map[string][]string {
	return []map[string][]string{{SecurityScheme: {}}}
}

// NewMiddleware rejects requests to protected operations that lack a valid
// bearer token and stores the user id for handlers. Operations without a
// Security requirement pass through.
func NewMiddleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if op := ctx.Operation(); op == nil || len(op.Security) == 0 {
			next(ctx)
			return
		}

		header := ctx.Header("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Token required")
			return
		}

		userID, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next(huma.WithValue(ctx, userIDKey{}, userID))
	}
}

// ContextWithUserID is used by tests and internal callers to act as a user.
func ContextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the authenticated user of the request.
func UserID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return userID, nil
}
