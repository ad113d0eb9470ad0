package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/algojudge.net/internal/config"
	"gitlab.com/algojudge.net/internal/core/ports/primary"
	"gitlab.com/algojudge.net/internal/core/ports/secondary"
	"gitlab.com/algojudge.net/internal/domain"
	"gitlab.com/algojudge.net/internal/static/errs"
)

var _ IAuthService = &googleAuthService{}

type googleAuthService struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
	Config      *config.GGAuthConfig
}

func NewGoogleAuthService(userPort secondary.UserPort, jwtProvider primary.JWTService, Config *config.GGAuthConfig) IAuthService {
	return &googleAuthService{
		userPort:    userPort,
		jwtProvider: jwtProvider,
		Config:      Config,
	}
}

func (g googleAuthService) ProviderName() domain.Provider {
	return domain.ProviderGoogle
}

// Login signs a Google-verified user in, provisioning a local account with
// the default user role on first sight
func (g googleAuthService) Login(ctx context.Context, users *domain.Users) (*domain.LoginResponse, error) {
	if users.GoogleID == nil {
		return nil, errs.InvalidCredentials
	}
	if users.AuthProvider != string(domain.ProviderGoogle) {
		return nil, errs.InvalidCredentials
	}
	if users.Email == nil {
		return nil, errs.EmailRequired
	}
	if g.Config.AllowedDomain != "" && !strings.HasSuffix(*users.Email, "@"+g.Config.AllowedDomain) {
		return nil, errs.InvalidCredentials
	}

	usr, err := g.userPort.GetByGoogleID(ctx, *users.GoogleID)
	if err != nil {
		return nil, err
	}
	if usr != nil {
		return issueLogin(ctx, g.jwtProvider, usr)
	}

	users.ID = uuid.New()
	users.PasswordHash = nil
	users.UserName = strings.Split(*users.Email, "@")[0]
	users.Role = domain.RoleUser
	users.AuthProvider = string(domain.ProviderGoogle)
	if err := g.userPort.Create(ctx, users); err != nil {
		return nil, errs.FailedToCreateUser
	}

	return issueLogin(ctx, g.jwtProvider, users)
}
