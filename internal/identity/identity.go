// Package identity resolves the calling user of an operation and decides
// whether that user may change server configuration.
package identity

import (
	"context"
	"errors"
	"strings"
)

// ErrNotAuthorized is returned when the caller is unknown or not allowed to
// administer servers.
var ErrNotAuthorized = errors.New("user not authorized")

type userKey struct{}

// WithUser returns a context carrying userID as the caller.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFromContext returns the caller stored by WithUser.
func UserFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userKey{}).(string)
	if !ok || strings.TrimSpace(userID) == "" {
		return "", false
	}
	return userID, true
}

// Resolver resolves the caller of a request.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context) (string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context) (string, error) { return f(ctx) }

// ContextResolver reads the caller from the context, falling back to
// Fallback when the context carries none. An empty Fallback makes a missing
// caller an authorization failure.
type ContextResolver struct {
	Fallback string
}

// Resolve implements Resolver.
func (r ContextResolver) Resolve(ctx context.Context) (string, error) {
	if userID, ok := UserFromContext(ctx); ok {
		return userID, nil
	}
	if r.Fallback != "" {
		return r.Fallback, nil
	}
	return "", ErrNotAuthorized
}

// StaticResolver always resolves to the same user.
type StaticResolver string

// Resolve implements Resolver.
func (s StaticResolver) Resolve(context.Context) (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", ErrNotAuthorized
	}
	return string(s), nil
}

// Authorizer restricts configuration changes to a set of administrators.
// An empty set allows every resolved user.
type Authorizer struct {
	admins map[string]struct{}
}

// NewAuthorizer returns an Authorizer for the given administrators.
func NewAuthorizer(administrators []string) *Authorizer {
	a := &Authorizer{admins: make(map[string]struct{}, len(administrators))}
	for _, name := range administrators {
		if name = strings.TrimSpace(name); name != "" {
			a.admins[name] = struct{}{}
		}
	}
	return a
}

// Authorize returns ErrNotAuthorized unless userID may administer servers.
func (a *Authorizer) Authorize(userID string) error {
	if a == nil || len(a.admins) == 0 {
		return nil
	}
	if _, ok := a.admins[userID]; ok {
		return nil
	}
	return ErrNotAuthorized
}
