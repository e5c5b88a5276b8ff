package authtest

import (
	"testing"
	"time"

	"coworking-pos/internal/domain/operator"
	"coworking-pos/internal/pkg/clock"
	"coworking-pos/internal/pkg/config"
	"coworking-pos/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) Service(clk clock.Clock) *jwt.Service {
	return jwt.NewService(h.cfg.Secret, h.cfg.Duration, clk)
}

func (h *JWTHelper) GenerateToken(t *testing.T, operatorID uuid.UUID, role operator.Role) string {
	t.Helper()
	token, err := h.Service(clock.NewRealClock()).GenerateToken(operatorID, role)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken signs a token issued two durations ago.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, operatorID uuid.UUID, role operator.Role) string {
	t.Helper()
	past := clock.NewMockClock(time.Now().Add(-2 * h.cfg.Duration))
	token, err := h.Service(past).GenerateToken(operatorID, role)
	require.NoError(t, err)
	return token
}
