package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifiedContext(t *testing.T, svc Service, token string) context.Context {
	t.Helper()
	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), decoded, nil)
}

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("user-1", auth.RoleEmployee, "EMP-001")
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	p, err := PrincipalFromContext(verifiedContext(t, svc, token))
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.Subject)
	assert.Equal(t, auth.RoleEmployee, p.Role)
	assert.Equal(t, "EMP-001", p.EmployeeID)
}

func TestPrincipalFromContext_ScannerHasNoEmployee(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, _, err := svc.GenerateAccessToken("kiosk-solano", auth.RoleScanner, "")
	require.NoError(t, err)

	p, err := PrincipalFromContext(verifiedContext(t, svc, token))
	require.NoError(t, err)
	assert.True(t, p.HasRole(auth.RoleScanner, auth.RoleAdmin))
	assert.Empty(t, p.EmployeeID)
}

func TestPrincipalFromContext_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	t.Run("no token", func(t *testing.T) {
		_, err := PrincipalFromContext(context.Background())
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken("user-1", auth.Role("owner"), "")
		require.NoError(t, err)
		_, err = PrincipalFromContext(verifiedContext(t, svc, token))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("not an access token", func(t *testing.T) {
		_, token, err := svc.JWTAuth().Encode(map[string]interface{}{"sub": "user-1", "role": "admin", "type": "refresh"})
		require.NoError(t, err)
		_, err = PrincipalFromContext(verifiedContext(t, svc, token))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestPrincipalFromContext_Expired(t *testing.T) {
	ctx := jwtauth.NewContext(context.Background(), nil, jwtauth.ErrExpired)

	_, err := PrincipalFromContext(ctx)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}
