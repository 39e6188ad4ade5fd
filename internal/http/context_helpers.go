package httpx

import (
	"context"

	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/service"
)

// Unexported context key types avoid collisions across packages.
type (
	clientIDKey struct{}
	sessionKey  struct{}
	identityKey struct{}
)

// SetClientIDInContext returns a child context carrying the browser client ID.
func SetClientIDInContext(ctx context.Context, clientID string) context.Context {
	if clientID == "" {
		return ctx
	}
	return context.WithValue(ctx, clientIDKey{}, clientID)
}

// GetClientIDFromContext returns the client ID set by the ClientID middleware.
func GetClientIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientIDKey{}).(string)
	return id, ok && id != ""
}

// SetSessionInContext returns a child context that carries the client's session store.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *service.SessionService) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session store attached by the gate or ClientSession.
func GetSessionFromContext(ctx context.Context) (*service.SessionService, bool) {
	s, ok := ctx.Value(sessionKey{}).(*service.SessionService)
	return s, ok && s != nil
}

// SetIdentityInContext records the identity the gate permitted.
func SetIdentityInContext(ctx context.Context, id domainauth.Identity) context.Context {
	if id == nil {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, id)
}

// GetIdentityFromContext returns the identity the gate permitted for this request.
func GetIdentityFromContext(ctx context.Context) (domainauth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domainauth.Identity)
	return id, ok && id != nil
}
