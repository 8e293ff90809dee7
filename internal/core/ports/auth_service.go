package ports

import (
	"context"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
