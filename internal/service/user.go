package service

import (
	"context"
	"errors"

	"github.com/Kgee7/EarnBull/internal/model"
	"github.com/Kgee7/EarnBull/internal/repository"
)

type UserService struct {
	repo *repository.Repository
}

func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{repo: repo}
}

type GoogleUser struct {
	GoogleID    string
	Email       string
	DisplayName string
}

// GetOrCreateUser resolves the signed-in identity to a profile, creating it
// with zero balances and the default goal ladder on first sign-in.
func (s *UserService) GetOrCreateUser(ctx context.Context, gu GoogleUser) (*model.User, bool, error) {
	existing, err := s.repo.GetUserByGoogleID(ctx, gu.GoogleID)
	if err == nil {
		if existing.Email != gu.Email || existing.DisplayName != gu.DisplayName {
			existing.Email = gu.Email
			existing.DisplayName = gu.DisplayName
			if err := s.repo.UpdateUser(ctx, existing); err != nil {
				return nil, false, err
			}
		}
		return existing, false, nil
	}

	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, false, err
	}

	user := &model.User{
		GoogleID:    gu.GoogleID,
		Email:       gu.Email,
		DisplayName: gu.DisplayName,
	}
	if err := s.repo.CreateUser(ctx, user, model.DefaultGoals()); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetUser(ctx, id)
}

// GetProfile returns the user with their goal ladder attached.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*model.UserWithGoals, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.GetGoals(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.UserWithGoals{User: *user, Goals: goals}, nil
}
