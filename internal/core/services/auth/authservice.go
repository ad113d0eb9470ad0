package auth

import (
	"context"

	"gitlab.com/algojudge.net/internal/domain"
)

type IAuthService interface {
	ProviderName() domain.Provider
	Login(ctx context.Context, users *domain.Users) (*domain.LoginResponse, error)
}

// IRegistrar is implemented by providers that support self sign-up
type IRegistrar interface {
	Register(ctx context.Context, userName, password string, email *string) (*domain.Users, error)
}
