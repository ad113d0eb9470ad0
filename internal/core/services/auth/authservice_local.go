package auth

import (
	"context"
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/algojudge.net/internal/core/ports/primary"
	"gitlab.com/algojudge.net/internal/core/ports/secondary"
	"gitlab.com/algojudge.net/internal/domain"
	"gitlab.com/algojudge.net/internal/global/logger"
	"gitlab.com/algojudge.net/internal/static/errs"
)

var _ IAuthService = &localAuthService{}
var _ IRegistrar = &localAuthService{}

type localAuthService struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
}

func NewLocalAuthService(
	userPort secondary.UserPort,
	jwtProvider primary.JWTService,
) *localAuthService {
	return &localAuthService{
		userPort:    userPort,
		jwtProvider: jwtProvider,
	}
}

func (g localAuthService) ProviderName() domain.Provider {
	return domain.ProviderLocal
}

// Register creates a local account with the default user role
func (g localAuthService) Register(ctx context.Context, userName, password string, email *string) (*domain.Users, error) {
	existing, err := g.userPort.GetByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.UserNameTaken
	}

	hash, err := g.jwtProvider.EncryptPassword(ctx, password)
	if err != nil {
		return nil, errs.InternalError
	}

	user := domain.NewUser(userName, domain.RoleUser, string(domain.ProviderLocal))
	user.PasswordHash = &hash
	user.Email = email
	if err := g.userPort.Create(ctx, user); err != nil {
		logger.Error("Failed to create user", "userName", userName, "error", err)
		return nil, errs.FailedToCreateUser
	}

	return user, nil
}

// Login verifies the password carried in users.PasswordHash against the
// stored hash and issues a token
func (g localAuthService) Login(ctx context.Context, users *domain.Users) (*domain.LoginResponse, error) {
	usr, err := g.userPort.GetByUserName(ctx, users.UserName)
	if err != nil {
		return nil, err
	}
	if usr == nil || usr.PasswordHash == nil || users.PasswordHash == nil {
		return nil, errs.InvalidCredentials
	}
	valid, err := g.jwtProvider.VerifyPassword(ctx, *usr.PasswordHash, *users.PasswordHash)
	if err != nil || !valid {
		return nil, errs.InvalidCredentials
	}

	return issueLogin(ctx, g.jwtProvider, usr)
}

// issueLogin builds the JWT claim set for a verified user and wraps it in a
// login response
func issueLogin(ctx context.Context, jwtProvider primary.JWTService, user *domain.Users) (*domain.LoginResponse, error) {
	authPayload := domain.AuthPayload{
		UserID:   user.ID.String(),
		Username: user.UserName,
		Role:     user.Role,
	}

	raw, err := json.Marshal(authPayload)
	if err != nil {
		return nil, errs.InternalError
	}
	var claims map[string]interface{}
	if err := json.Unmarshal(raw, &claims); err != nil {
		logger.Error("Failed to unmarshal auth payload", "error", err)
		return nil, errs.InternalError
	}

	token, err := jwtProvider.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, claims)
	if err != nil {
		return nil, errs.GeneratingToken
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return &domain.LoginResponse{
		ID:       user.ID.String(),
		Username: user.UserName,
		Email:    email,
		Role:     user.Role,
		Token:    token,
	}, nil
}
