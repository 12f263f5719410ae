package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"jobradarBack/internal/models"
	"jobradarBack/internal/repositories"
	"jobradarBack/utils"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	TokenManager *utils.Manager
}

// SignUp registers the account and signs the user in immediately.
func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, models.Tokens, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
	}
	role := req.Role
	if role != models.RoleCompany {
		role = models.RoleSeeker
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}

	user, err := s.UserRepo.CreateUser(ctx, models.User{
		Name:        strings.TrimSpace(req.Name),
		Email:       req.Email,
		Password:    string(hash),
		Role:        role,
		YearsOfExp:  req.YearsOfExp,
		CompanyName: strings.TrimSpace(req.CompanyName),
	})
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}

	tokens, err := s.issueTokens(ctx, user)
	return user, tokens, err
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.User, models.Tokens, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
		}
		return models.User{}, models.Tokens{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
	}
	user.Password = ""

	tokens, err := s.issueTokens(ctx, user)
	return user, tokens, err
}

// Refresh rotates the session on a valid refresh token.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (models.Tokens, error) {
	session, err := s.UserRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return models.Tokens{}, err
	}
	if session.UserID == 0 || time.Now().After(session.ExpiresAt) {
		return models.Tokens{}, models.ErrNotAuthenticated
	}

	user, err := s.UserRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return models.Tokens{}, err
	}
	return s.issueTokens(ctx, user)
}

func (s *UserService) Logout(ctx context.Context, userID int) error {
	return s.UserRepo.DeleteSession(ctx, userID)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) issueTokens(ctx context.Context, user models.User) (models.Tokens, error) {
	access, err := s.TokenManager.NewJWT(user.ID, user.Role, accessTokenTTL)
	if err != nil {
		return models.Tokens{}, err
	}
	refresh, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}

	err = s.UserRepo.SetSession(ctx, models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return models.Tokens{}, err
	}

	return models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}
