// Package services contains server-side business logic. This file implements
// UserService, which handles sign-up, sign-in and issuing JWTs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/dmitrijs2005/photojournal/internal/cryptox"
	"github.com/dmitrijs2005/photojournal/internal/server/auth"
	"github.com/dmitrijs2005/photojournal/internal/server/config"
	"github.com/dmitrijs2005/photojournal/internal/server/models"
	"github.com/dmitrijs2005/photojournal/internal/server/repositories/repomanager"
)

// hashPassword is a seam so tests can use cheap argon2 parameters.
var hashPassword = cryptox.HashPassword

// SignInResult is the outcome of a successful sign-in.
type SignInResult struct {
	User  *models.User
	Token string
}

// UserService provides authentication-related operations:
// - SignUp: create users with a hashed password
// - SignIn: verify credentials and mint a bearer token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// SignUp registers a new account. The returned user never carries the hash.
func (s *UserService) SignUp(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, username, hashed)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	u.HashedPassword = ""
	return u, nil
}

// SignIn verifies credentials and issues a token carrying the user's id and
// name. Unknown users, wrong passwords and empty fields all fail with the
// same ErrInvalidLogin.
func (s *UserService) SignIn(ctx context.Context, username, password string) (*SignInResult, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidLogin
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same hashing cost as a real verification
			cryptox.VerifyPassword(s.getDummyHash(), password)
			return nil, ErrInvalidLogin
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !cryptox.VerifyPassword(user.HashedPassword, password) {
		return nil, ErrInvalidLogin
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &SignInResult{
		User:  &models.User{ID: user.ID, Username: user.Username},
		Token: token,
	}, nil
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		// an error leaves the hash empty; VerifyPassword then just reports false
		s.dummyHash, _ = hashPassword(string(common.GenerateRandByteArray(16)))
	})
	return s.dummyHash
}
