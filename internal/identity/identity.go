package identity

import (
	"context"
	"errors"
)

var (
	ErrTokenInvalid = errors.New("identity token invalid")
	ErrTokenExpired = errors.New("identity token expired")
)

// Claims 身份提供方签发的令牌声明
type Claims struct {
	Subject        string // 提供方 subject id
	Email          string
	PhoneNumber    string
	EmailVerified  bool
	SignInProvider string
}

// Verifier 校验外部身份令牌并提取声明
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Claims, error)
}
