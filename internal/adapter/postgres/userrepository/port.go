package userrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"gitlab.com/algojudge.net/internal/core/ports/primary"
	"gitlab.com/algojudge.net/internal/core/ports/secondary"
	"gitlab.com/algojudge.net/internal/domain"
	querybuilder "gitlab.com/algojudge.net/internal/utils"
)

var _ secondary.UserPort = (*userRepo)(nil)

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.UserPort {
	return &userRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (u *userRepo) Create(ctx context.Context, user *domain.Users) error {
	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Insert(
			userTbl.ID,
			userTbl.UserName, userTbl.PasswordHash, userTbl.Email,
			userTbl.Role,
			userTbl.AuthProvider, userTbl.GoogleID,
		).
		Into(userTbl.GetTableName()).
		Values(
			user.ID,
			user.UserName, user.PasswordHash, user.Email,
			user.Role,
			user.AuthProvider, user.GoogleID,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := u.db.ExecContext(ctx, query, args...); err != nil {
		u.logger.Error("Failed to create user", "userName", user.UserName, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (u *userRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	return u.getByColumn(ctx, userTbl.ID, id)
}

func (u *userRepo) GetByUserName(ctx context.Context, userName string) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	return u.getByColumn(ctx, userTbl.UserName, userName)
}

func (u *userRepo) GetByGoogleID(ctx context.Context, googleID string) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	return u.getByColumn(ctx, userTbl.GoogleID, googleID)
}

func (u *userRepo) getByColumn(ctx context.Context, column string, value interface{}) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Select(
			userTbl.ID,
			userTbl.UserName, userTbl.PasswordHash, userTbl.Email,
			userTbl.Role,
			userTbl.AuthProvider, userTbl.GoogleID,
		).
		From(userTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", column), value).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var user domain.Users
	err := u.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		u.logger.Error("Failed to get user", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
