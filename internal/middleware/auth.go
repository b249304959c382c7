package middleware

import (
	"net/http"
	"strings"
	"time"

	"infinite-experiment/logbook/internal/auth"
	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/constants"
)

// AuthMiddleware requires a valid bearer token and stores its claims in the request context
func AuthMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			if !tokens.Enabled() {
				common.RespondError(w, initTime, nil, "API is disabled", http.StatusServiceUnavailable)
				return
			}

			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				common.RespondError(w, initTime, nil, "Unauthorized. Missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				common.RespondError(w, initTime, err, constants.GetErrorMessage(constants.ErrCodeUnauthorized), http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
