package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	claimRole       = "role"
	claimEmployeeID = "employee_id"
	claimType       = "type"

	tokenTypeAccess = "access"
)

type Service interface {
	// GenerateAccessToken mints a token the way the identity provider does.
	// Used by operators to provision scanner kiosks and by tests.
	GenerateAccessToken(subject string, role auth.Role, employeeID string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenTTL time.Duration
	tokenAuth      *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenTTL time.Duration) Service {
	return &JWTService{
		accessTokenTTL: accessTokenTTL,
		tokenAuth:      jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(subject string, role auth.Role, employeeID string) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenTTL).Unix()

	claims := map[string]interface{}{
		jwt.SubjectKey:    subject,
		claimRole:         string(role),
		claimType:         tokenTypeAccess,
		jwt.ExpirationKey: expiresAt,
	}
	if employeeID != "" {
		claims[claimEmployeeID] = employeeID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// PrincipalFromContext reads the token verified by jwtauth.Verifier.
func PrincipalFromContext(ctx context.Context) (auth.Principal, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if errors.Is(err, jwtauth.ErrExpired) {
		return auth.Principal{}, auth.ErrTokenExpired
	}
	if err != nil || token == nil {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	if tokenType, _ := claims[claimType].(string); tokenType != tokenTypeAccess {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	role, _ := claims[claimRole].(string)
	p := auth.Principal{
		Subject: token.Subject(),
		Role:    auth.Role(role),
	}
	if !p.Role.Valid() {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	p.EmployeeID, _ = claims[claimEmployeeID].(string)
	return p, nil
}
