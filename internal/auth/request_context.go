package auth

import (
	"context"
)

type claimsKey struct{}

// SetUserClaims returns a copy of ctx carrying the authenticated caller
func SetUserClaims(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetUserClaims returns the caller stored by SetUserClaims, or nil on unauthenticated requests
func GetUserClaims(ctx context.Context) UserClaims {
	if claims, ok := ctx.Value(claimsKey{}).(UserClaims); ok {
		return claims
	}
	return nil
}

// Subject is the token subject of the caller, empty when unauthenticated
func Subject(ctx context.Context) string {
	if claims := GetUserClaims(ctx); claims != nil {
		return claims.Subject()
	}
	return ""
}
