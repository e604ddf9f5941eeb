package service

import (
	"context"
	"errors"
	"fmt"

	"evently/internal/auth"
	apperrors "evently/internal/errors"
	"evently/internal/model"
	"evently/internal/repository"
)

// SignupInput carries the fields accepted at account creation.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	UserType  string
	Username  string
	Password  string
	Mobile    string
	Gender    string
}

// AuthService handles account creation and login.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, err error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates an authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{users: users, jwtService: jwtService}
}

// Signup stores a new user with a hashed password. The role defaults to
// "user" when the request does not name one.
func (s *authService) Signup(ctx context.Context, input SignupInput) (*model.User, error) {
	digest, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.UserType
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		UserType:  role,
		Username:  input.Username,
		Password:  digest,
		Mobile:    input.Mobile,
		Gender:    input.Gender,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Login verifies credentials and issues a session token. Unknown usernames
// and wrong passwords fail identically so existence is not leaked.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.Password) {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID.Hex(), user.UserType)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
