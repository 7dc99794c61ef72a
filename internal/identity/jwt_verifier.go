package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bloomcart/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// JWTVerifier 基于共享密钥的身份令牌校验器
type JWTVerifier struct {
	secret   []byte
	issuer   string
	audience string
	leeway   time.Duration
}

// NewJWTVerifier 创建身份令牌校验器
func NewJWTVerifier(cfg config.IdentityConfig) *JWTVerifier {
	leeway := time.Duration(cfg.LeewaySeconds) * time.Second
	if leeway <= 0 {
		leeway = 30 * time.Second
	}
	return &JWTVerifier{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		leeway:   leeway,
	}
}

type tokenClaims struct {
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	EmailVerified  bool   `json:"email_verified"`
	SignInProvider string `json:"sign_in_provider"`
	jwt.RegisteredClaims
}

// Verify 校验令牌签名、签发方与受众，提取身份声明
func (v *JWTVerifier) Verify(ctx context.Context, idToken string) (*Claims, error) {
	trimmed := strings.TrimSpace(idToken)
	if trimmed == "" {
		return nil, ErrTokenInvalid
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		options = append(options, jwt.WithAudience(v.audience))
	}

	parser := jwt.NewParser(options...)
	claims := &tokenClaims{}
	token, err := parser.ParseWithClaims(trimmed, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return &Claims{
		Subject:        claims.Subject,
		Email:          strings.ToLower(strings.TrimSpace(claims.Email)),
		PhoneNumber:    strings.TrimSpace(claims.PhoneNumber),
		EmailVerified:  claims.EmailVerified,
		SignInProvider: claims.SignInProvider,
	}, nil
}
