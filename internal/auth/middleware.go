package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/DougPeron/backend-agendamento-firebase/internal/domain"
)

type identityKey struct{}

// RequireAuth rejects requests without a valid bearer token and stores
// the verified identity on the request context.
func RequireAuth(verifier Verifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthenticated(w)
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			unauthenticated(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
	})
}

// ContextWithIdentity attaches a verified identity to the context.
func ContextWithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity stored by RequireAuth.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	return identity, ok
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"missing or invalid credentials","code":"unauthenticated"}`))
}
