package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"evently/internal/auth"
	"evently/internal/cache"
	apperrors "evently/internal/errors"
	"evently/internal/model"
	"evently/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UpdateUserInput carries the optional fields of a partial user update.
// Empty fields are left untouched.
type UpdateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	UserType  string
	Username  string
	Password  string
	Mobile    string
	Gender    string
}

// UserPage is one page of users with the listing totals.
type UserPage struct {
	Users       []model.User `json:"users"`
	PageSize    int64        `json:"pageSize"`
	CurrentPage int64        `json:"currentPage"`
	TotalData   int64        `json:"totalData"`
}

// UserService exposes user CRUD operations.
type UserService interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdatePartial(ctx context.Context, id string, input UpdateUserInput) (changed bool, err error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q repository.PageQuery) (*UserPage, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func userCacheKey(id string) string {
	return "user:" + id
}

// GetByID reads through the cache.
func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// UpdatePartial applies only the non-empty fields of input. A provided
// password is stored as a fresh digest. The returned bool reports whether any
// stored field actually changed value.
func (s *userService) UpdatePartial(ctx context.Context, id string, input UpdateUserInput) (bool, error) {
	fields := map[string]interface{}{}
	if input.FirstName != "" {
		fields["firstName"] = input.FirstName
	}
	if input.LastName != "" {
		fields["lastName"] = input.LastName
	}
	if input.Email != "" {
		fields["email"] = input.Email
	}
	if input.UserType != "" {
		fields["userType"] = input.UserType
	}
	if input.Username != "" {
		fields["username"] = input.Username
	}
	if input.Password != "" {
		digest, err := auth.HashPassword(input.Password)
		if err != nil {
			return false, fmt.Errorf("hash password: %w", err)
		}
		fields["password"] = digest
	}
	if input.Mobile != "" {
		fields["mobile"] = input.Mobile
	}
	if input.Gender != "" {
		fields["gender"] = input.Gender
	}

	res, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return false, err
	}
	if !res.Matched {
		return false, apperrors.ErrUserNotFound
	}

	_ = s.cache.Delete(ctx, userCacheKey(id))
	return res.Changed, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrUserNotFound
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	return nil
}

func (s *userService) List(ctx context.Context, q repository.PageQuery) (*UserPage, error) {
	q = q.Normalize()
	users, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &UserPage{
		Users:       users,
		PageSize:    q.Size,
		CurrentPage: q.Page,
		TotalData:   total,
	}, nil
}
