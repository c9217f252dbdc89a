package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Claim names carried by bearer tokens
const (
	ClaimSubject  = "sub"
	ClaimUsername = "username"
	ClaimRole     = "role"
)

type actorKey struct{}

// WithActor stores the authenticated actor in ctx
func WithActor(ctx context.Context, actor simplecms.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored by RequireActor
func ActorFromContext(ctx context.Context) (simplecms.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(simplecms.Actor)
	return actor, ok
}

// NewTokenAuth creates an HS256 verifier/signer for secret
func NewTokenAuth(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// IssueToken signs a token for actor that expires after ttl. A ttl of zero
// or less issues a token without an exp claim, which never expires.
func IssueToken(tokenAuth *jwtauth.JWTAuth, actor simplecms.Actor, ttl time.Duration) (string, error) {
	claims := map[string]interface{}{
		ClaimSubject:  actor.ID.String(),
		ClaimUsername: actor.Username,
		ClaimRole:     actor.Role,
	}
	jwtauth.SetIssuedNow(claims)
	if ttl > 0 {
		jwtauth.SetExpiryIn(claims, ttl)
	}
	_, token, err := tokenAuth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// actorFromClaims maps verified token claims to an Actor
func actorFromClaims(claims map[string]interface{}) (simplecms.Actor, error) {
	sub, _ := claims[ClaimSubject].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return simplecms.Actor{}, fmt.Errorf("invalid subject claim: %w", err)
	}
	username, _ := claims[ClaimUsername].(string)
	role, _ := claims[ClaimRole].(string)
	return simplecms.Actor{ID: id, Username: username, Role: role}, nil
}

// RequireActor rejects requests without a valid token verified by
// jwtauth.Verifier and stores the actor in the request context.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			respondError(w, r, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}
		actor, err := actorFromClaims(claims)
		if err != nil {
			respondError(w, r, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}
