package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{Secret: testSecret, Issuer: "retailpos-identity"})
}

func signClaims(t *testing.T, claims *Claims, method jwt.SigningMethod, key any) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "retailpos-identity",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TenantID:  uuid.NewString(),
		UserID:    uuid.NewString(),
		TokenType: TokenTypeAccess,
	}
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService()
	tenantID, userID, branchID := uuid.New(), uuid.New(), uuid.New()

	token, err := svc.IssueAccessToken(TokenInput{
		TenantID:    tenantID,
		UserID:      userID,
		Username:    "cashier01",
		BranchIDs:   []uuid.UUID{branchID},
		Permissions: []string{"refund:create", "refund:approve"},
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)

	gotTenant, err := claims.TenantUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)
	gotUser, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "cashier01", claims.Username)
	assert.Equal(t, []string{branchID.String()}, claims.BranchIDs)
	assert.True(t, claims.HasPermission("refund:approve"))
	assert.False(t, claims.HasPermission("refund:complete"))
}

func TestJWTService_ValidateAccessToken_Rejects(t *testing.T) {
	svc := newTestJWTService()

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	future := validClaims()
	future.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))

	refresh := validClaims()
	refresh.TokenType = TokenTypeRefresh

	otherIssuer := validClaims()
	otherIssuer.Issuer = "someone-else"

	noTenant := validClaims()
	noTenant.TenantID = ""

	badUser := validClaims()
	badUser.UserID = "not-a-uuid"

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"garbage", "not.a.jwt", ErrInvalidToken},
		{"wrong secret", signClaims(t, validClaims(), jwt.SigningMethodHS256, []byte("another-secret")), ErrInvalidToken},
		{"wrong algorithm", signClaims(t, validClaims(), jwt.SigningMethodHS512, []byte(testSecret)), ErrInvalidToken},
		{"expired", signClaims(t, expired, jwt.SigningMethodHS256, []byte(testSecret)), ErrExpiredToken},
		{"not yet valid", signClaims(t, future, jwt.SigningMethodHS256, []byte(testSecret)), ErrTokenNotYetValid},
		{"refresh token", signClaims(t, refresh, jwt.SigningMethodHS256, []byte(testSecret)), ErrInvalidTokenType},
		{"other issuer", signClaims(t, otherIssuer, jwt.SigningMethodHS256, []byte(testSecret)), ErrInvalidToken},
		{"missing tenant", signClaims(t, noTenant, jwt.SigningMethodHS256, []byte(testSecret)), ErrMissingTenantID},
		{"malformed user", signClaims(t, badUser, jwt.SigningMethodHS256, []byte(testSecret)), ErrMissingUserID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJWTService_DefaultTTL(t *testing.T) {
	svc := newTestJWTService()
	fixed := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	token, err := svc.IssueAccessToken(TokenInput{TenantID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(15*time.Minute), claims.ExpiresAt.Time)
}
