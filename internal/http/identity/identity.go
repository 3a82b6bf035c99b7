// Package identity resolves which of the two workspace owners is calling.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const HeaderOwner = "X-Owner"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrUnknownOwner = errors.New("owner is not part of this workspace")
)

type ctxKey struct{}

// WithOwner returns a copy of ctx carrying owner.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ctxKey{}, owner)
}

// Owner returns the caller resolved by the middleware, if any.
func Owner(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ctxKey{}).(string)
	return owner, ok && owner != ""
}

type Resolver struct {
	secret []byte
	owners []string
}

// NewResolver builds a resolver for the given owners. An empty secret turns
// token checks off and trusts the X-Owner header instead.
func NewResolver(secret string, owners ...string) *Resolver {
	r := &Resolver{owners: owners}
	if secret != "" {
		r.secret = []byte(secret)
	}

	return r
}

func (r *Resolver) Known(owner string) bool {
	return slices.Contains(r.owners, owner)
}

// Middleware puts the caller into the request context. With a secret every
// request needs a valid HS256 token whose subject is a known owner.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		owner, err := r.resolve(req)
		if err != nil {
			status := http.StatusBadRequest
			if r.secret != nil {
				status = http.StatusUnauthorized
			}

			http.Error(w, err.Error(), status)

			return
		}

		if owner != "" {
			req = req.WithContext(WithOwner(req.Context(), owner))
		}

		next.ServeHTTP(w, req)
	})
}

func (r *Resolver) resolve(req *http.Request) (string, error) {
	if r.secret == nil {
		owner := strings.TrimSpace(req.Header.Get(HeaderOwner))
		if owner != "" && !r.Known(owner) {
			return "", ErrUnknownOwner
		}

		return owner, nil
	}

	raw, ok := strings.CutPrefix(req.Header.Get("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return "", ErrMissingToken
	}

	return r.Verify(strings.TrimSpace(raw))
}

// Verify checks a token and returns its owner.
func (r *Resolver) Verify(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("invalid token subject: %w", err)
	}

	if !r.Known(sub) {
		return "", ErrUnknownOwner
	}

	return sub, nil
}

// Issue signs a token for owner valid for ttl.
func (r *Resolver) Issue(owner string, ttl time.Duration) (string, error) {
	if r.secret == nil {
		return "", errors.New("no signing secret configured")
	}

	if !r.Known(owner) {
		return "", ErrUnknownOwner
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   owner,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
