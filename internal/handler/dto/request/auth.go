package request

import (
	"coworking-pos/internal/domain/operator"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *LoginRequest) ToDomain() (operator.Credentials, error) {
	return operator.NewCredentials(r.Email, r.Password)
}
