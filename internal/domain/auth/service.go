package auth

import "context"

// AuthService issues access tokens for worker accounts. Registration,
// password reset and role administration are out of scope here.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
