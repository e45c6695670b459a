package services

import (
	"context"
	"database/sql"
	"errors"

	"moviecatalog/internal/auth"
	"moviecatalog/internal/common"
	"moviecatalog/internal/logging"
	"moviecatalog/internal/models"
	"moviecatalog/internal/repositories/repomanager"
)

type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenIssuer
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenIssuer, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		logger:      logger,
	}
}

// Register stores a new account with a bcrypt-hashed password. A taken email
// yields common.ErrorConflict; values the store rejects yield
// common.ErrorValidation.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		if errors.Is(err, common.ErrorValidation) {
			return nil, common.ErrorValidation
		}
		s.logger.Error(ctx, "user create failed", "email", in.Email, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login checks the credentials and returns a signed access token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	if !auth.CheckPasswordHash(password, user.Password) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "user_id", user.ID, "error", err)
		return "", common.ErrorInternal
	}

	return token, nil
}
