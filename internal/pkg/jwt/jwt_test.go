package jwt_test

import (
	"testing"
	"time"

	"coworking-pos/internal/domain/operator"
	"coworking-pos/internal/pkg/clock"
	"coworking-pos/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC))
	svc := jwt.NewService("secret", time.Hour, clk)
	operatorID := uuid.New()

	token, err := svc.GenerateToken(operatorID, operator.RoleCashier)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, operatorID, claims.OperatorID)
	assert.Equal(t, "cashier", claims.Role)
	assert.Equal(t, operatorID.String(), claims.Subject)
}

func TestService_ValidateToken_Errors(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC))
	svc := jwt.NewService("secret", time.Hour, clk)

	token, err := svc.GenerateToken(uuid.New(), operator.RoleAdmin)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		expiredClock := clock.NewMockClock(clk.Now().Add(2 * time.Hour))
		_, err := jwt.NewService("secret", time.Hour, expiredClock).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := jwt.NewService("other", time.Hour, clk).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
