package auth

// UserClaims is what handlers may know about an authenticated API caller
type UserClaims interface {
	Subject() string
	TokenID() string
}

// TokenClaims are carried by bearer tokens issued by cmd/token_gen
type TokenClaims struct {
	SubjectValue string
	TokenIDValue string
}

func (c *TokenClaims) Subject() string { return c.SubjectValue }
func (c *TokenClaims) TokenID() string { return c.TokenIDValue }
